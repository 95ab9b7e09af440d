package member

import (
	"context"

	connectionService "atlas-introductions/connection"
	localConsumer "atlas-introductions/kafka/consumer"
	"atlas-introductions/kafka/message"
	connectionMsg "atlas-introductions/kafka/message/connection"
	memberMsg "atlas-introductions/kafka/message/member"
	"atlas-introductions/kafka/producer"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	kafka "github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewConfig creates a new consumer configuration for member events
func NewConfig(l logrus.FieldLogger) func(name string) func(token string) func(groupId string) consumer.Config {
	return localConsumer.NewConfig(l)
}

// InitHandlers initializes all member event handlers
func InitHandlers(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) []handler.Handler {
	processor := connectionService.NewProcessor(l, ctx, db)

	return []handler.Handler{
		kafka.AdaptHandler(kafka.PersistentConfig(handleMemberDeleted(l, ctx, processor))),
	}
}

// handleMemberDeleted closes every active pairing a deleted member participates in
func handleMemberDeleted(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[memberMsg.StatusEvent[memberMsg.DeletedStatusEventBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, event memberMsg.StatusEvent[memberMsg.DeletedStatusEventBody]) {
		if event.Type != memberMsg.StatusEventTypeDeleted {
			return
		}

		l.WithField("memberId", event.MemberId).Debug("Processing member deleted event")

		closed, err := processor.HandleMemberDeletionAndEmit(uuid.New(), event.MemberId)
		if err != nil {
			l.WithError(err).WithField("memberId", event.MemberId).Error("Failed to process member deletion")

			errorProvider := connectionService.ErrorEventProvider(event.MemberId, "MEMBER_DELETION_FAILED", connectionService.ErrorCodeInvalidState, 0)
			if emitErr := message.Emit(producer.ProviderImpl(l)(ctx))(func(buf *message.Buffer) error {
				return buf.Put(connectionMsg.EnvEventStatusTopic, errorProvider)
			}); emitErr != nil {
				l.WithError(emitErr).Error("Failed to emit error event for member deletion failure")
			}
			return
		}

		l.WithFields(logrus.Fields{
			"memberId": event.MemberId,
			"closed":   len(closed),
		}).Info("Member deletion processed successfully")
	}
}

// InitConsumers initializes the member event consumers
func InitConsumers(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
		return func(consumerGroupId string) {
			config := NewConfig(l)("member_status_events")(memberMsg.EnvEventTopicStatus)(consumerGroupId)

			rf(config,
				consumer.SetHeaderParsers(consumer.SpanHeaderParser, consumer.TenantHeaderParser),
			)
		}
	}
}
