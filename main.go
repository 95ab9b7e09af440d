package main

import (
	connectionService "atlas-introductions/connection"
	"atlas-introductions/database"
	connectionConsumer "atlas-introductions/kafka/consumer/connection"
	memberConsumer "atlas-introductions/kafka/consumer/member"
	"atlas-introductions/logger"
	"atlas-introductions/scheduler"
	"atlas-introductions/service"
	"atlas-introductions/tracing"
	"os"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-rest/server"
)

const serviceName = "atlas-introductions"

type Server struct {
	baseUrl string
	prefix  string
}

func (s Server) GetBaseURL() string {
	return s.baseUrl
}

func (s Server) GetPrefix() string {
	return s.prefix
}

func GetServer() Server {
	return Server{
		baseUrl: "",
		prefix:  "/api/ins/",
	}
}

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	tdm := service.GetTeardownManager()

	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize tracer.")
	}

	db := database.Connect(l, database.SetMigrations(connectionService.Migration))

	// Initialize completion sweep scheduler
	completionSweepScheduler := scheduler.NewCompletionSweepScheduler(l, tdm.Context(), db)
	completionSweepScheduler.Start()

	// Register scheduler teardown
	tdm.TeardownFunc(func() {
		completionSweepScheduler.Stop()
	})

	// Initialize Kafka consumers
	consumerManager := consumer.GetManager()
	connectionConsumer.InitConsumers(l, tdm.Context(), db)(
		consumerManager.AddConsumer(l, tdm.Context(), tdm.WaitGroup()),
	)("introduction-service")
	memberConsumer.InitConsumers(l, tdm.Context(), db)(
		consumerManager.AddConsumer(l, tdm.Context(), tdm.WaitGroup()),
	)("introduction-service")

	server.New(l).
		WithContext(tdm.Context()).
		WithWaitGroup(tdm.WaitGroup()).
		SetBasePath(GetServer().GetPrefix()).
		AddRouteInitializer(connectionService.InitializeRoutes(db)(GetServer())).
		SetPort(os.Getenv("REST_PORT")).
		Run()

	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	tdm.Wait()
	l.Infoln("Service shutdown.")
}
