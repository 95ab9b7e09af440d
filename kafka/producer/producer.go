package producer

import (
	"context"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/sirupsen/logrus"
)

// Provider resolves a topic token to a message producer
type Provider func(token string) producer.MessageProducer

// ProviderImpl produces topic-scoped kafka producers for the given context
func ProviderImpl(l logrus.FieldLogger) func(ctx context.Context) Provider {
	return func(ctx context.Context) Provider {
		return func(token string) producer.MessageProducer {
			return producer.Produce(l)(ctx)(token)
		}
	}
}
