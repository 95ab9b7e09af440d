package logger

import (
	"os"

	"github.com/sirupsen/logrus"
	"go.elastic.co/ecslogrus"
)

// ExtraFieldHook attaches the service name to every log entry
type ExtraFieldHook struct {
	service string
}

func newHook(service string) *ExtraFieldHook {
	return &ExtraFieldHook{service: service}
}

// Levels returns the levels the hook fires on
func (h *ExtraFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire decorates the entry with the service name
func (h *ExtraFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["service.name"] = h.service
	return nil
}

// CreateLogger produces a ECS-formatted logger for the service
func CreateLogger(serviceName string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&ecslogrus.Formatter{})
	l.AddHook(newHook(serviceName))

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return l
}
