package connection

import (
	"context"
	"errors"

	connectionService "atlas-introductions/connection"
	localConsumer "atlas-introductions/kafka/consumer"
	"atlas-introductions/kafka/message"
	connectionMsg "atlas-introductions/kafka/message/connection"
	"atlas-introductions/kafka/producer"
	"atlas-introductions/profile"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	kafka "github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewConfig creates a new consumer configuration for connection commands
func NewConfig(l logrus.FieldLogger) func(name string) func(token string) func(groupId string) consumer.Config {
	return localConsumer.NewConfig(l)
}

// InitHandlers initializes all connection command handlers
func InitHandlers(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) []handler.Handler {
	processor := connectionService.NewProcessor(l, ctx, db)

	return []handler.Handler{
		kafka.AdaptHandler(kafka.PersistentConfig(handleRequest(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleRespond(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleSkipCompatibility(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleSubmitCompatibility(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleSendQuestionnaire(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleAnswerQuestionnaire(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleReject(l, ctx, processor))),
		kafka.AdaptHandler(kafka.PersistentConfig(handleRecheckCompletion(l, ctx, processor))),
	}
}

func emitErrorEvent(l logrus.FieldLogger, ctx context.Context, memberId uint32, errorType string, err error, requestId uint32) {
	errorCode := connectionService.ErrorCodeInvalidState
	var le connectionService.LifecycleError
	if errors.As(err, &le) {
		errorCode = le.Code
	}
	errorProvider := connectionService.ErrorEventProvider(memberId, errorType, errorCode, requestId)
	if emitErr := message.Emit(producer.ProviderImpl(l)(ctx))(func(buf *message.Buffer) error {
		return buf.Put(connectionMsg.EnvEventStatusTopic, errorProvider)
	}); emitErr != nil {
		l.WithError(emitErr).Error("Failed to emit lifecycle error event")
	}
}

// handleRequest handles connection request creation commands
func handleRequest(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.RequestCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.RequestCommandBody]) {
		if cmd.Type != connectionMsg.CommandRequest {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":    cmd.ActorId,
			"receiverId": cmd.Body.ReceiverId,
		}).Debug("Processing connection request command")

		request, err := processor.RequestAndEmit(uuid.New(), cmd.ActorId, cmd.Body.ReceiverId, cmd.Body.Message)
		if err != nil {
			l.WithError(err).WithFields(logrus.Fields{
				"actorId":    cmd.ActorId,
				"receiverId": cmd.Body.ReceiverId,
			}).Error("Failed to process connection request")
			emitErrorEvent(l, ctx, cmd.ActorId, "REQUEST_FAILED", err, 0)
			return
		}

		l.WithField("requestId", request.Id()).Info("Connection request processed successfully")
	}
}

// handleRespond handles approve and reject decision commands
func handleRespond(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.RespondCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.RespondCommandBody]) {
		if cmd.Type != connectionMsg.CommandRespond {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":   cmd.ActorId,
			"requestId": cmd.Body.RequestId,
			"decision":  cmd.Body.Decision,
		}).Debug("Processing request response command")

		request, err := processor.RespondAndEmit(uuid.New(), cmd.Body.RequestId, cmd.ActorId, cmd.Body.Decision)
		if err != nil {
			l.WithError(err).WithField("requestId", cmd.Body.RequestId).Error("Failed to process request response")
			emitErrorEvent(l, ctx, cmd.ActorId, "RESPOND_FAILED", err, cmd.Body.RequestId)
			return
		}

		l.WithFields(logrus.Fields{
			"requestId": request.Id(),
			"stage":     request.Stage().String(),
		}).Info("Request response processed successfully")
	}
}

// handleSkipCompatibility handles skip compatibility commands
func handleSkipCompatibility(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.SkipCompatibilityCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.SkipCompatibilityCommandBody]) {
		if cmd.Type != connectionMsg.CommandSkipCompatibility {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":   cmd.ActorId,
			"requestId": cmd.Body.RequestId,
		}).Debug("Processing compatibility skip command")

		request, err := processor.SkipCompatibilityAndEmit(uuid.New(), cmd.Body.RequestId, cmd.ActorId)
		if err != nil {
			l.WithError(err).WithField("requestId", cmd.Body.RequestId).Error("Failed to process compatibility skip")
			emitErrorEvent(l, ctx, cmd.ActorId, "SKIP_COMPATIBILITY_FAILED", err, cmd.Body.RequestId)
			return
		}

		l.WithField("requestId", request.Id()).Info("Compatibility skip processed successfully")
	}
}

// handleSubmitCompatibility handles compatibility answer submissions
func handleSubmitCompatibility(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.SubmitCompatibilityCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.SubmitCompatibilityCommandBody]) {
		if cmd.Type != connectionMsg.CommandSubmitCompatibility {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":    cmd.ActorId,
			"background": cmd.Body.ReligiousBackground,
		}).Debug("Processing compatibility submission command")

		answers := profile.Answers{
			MarriageUnderstanding:       cmd.Body.MarriageUnderstanding,
			LifeGoals:                   cmd.Body.LifeGoals,
			PartnerTraits:               cmd.Body.PartnerTraits,
			HobbiesInterests:            cmd.Body.HobbiesInterests,
			ReligiousPracticeImportance: cmd.Body.ReligiousPracticeImportance,
			SpiritualGrowth:             cmd.Body.SpiritualGrowth,
			SectPreference:              cmd.Body.SectPreference,
			ChildrenPreference:          cmd.Body.ChildrenPreference,
			ConflictResolution:          cmd.Body.ConflictResolution,
		}

		advanced, err := processor.SubmitCompatibilityAndEmit(uuid.New(), cmd.ActorId, profile.ReligiousBackground(cmd.Body.ReligiousBackground), answers)
		if err != nil {
			l.WithError(err).WithField("actorId", cmd.ActorId).Error("Failed to process compatibility submission")
			emitErrorEvent(l, ctx, cmd.ActorId, "SUBMIT_COMPATIBILITY_FAILED", err, 0)
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":  cmd.ActorId,
			"advanced": len(advanced),
		}).Info("Compatibility submission processed successfully")
	}
}

// handleSendQuestionnaire handles custom questionnaire send commands
func handleSendQuestionnaire(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.SendQuestionnaireCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.SendQuestionnaireCommandBody]) {
		if cmd.Type != connectionMsg.CommandSendQuestionnaire {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":   cmd.ActorId,
			"requestId": cmd.Body.RequestId,
		}).Debug("Processing questionnaire send command")

		questionnaire, err := processor.SendQuestionnaireAndEmit(uuid.New(), cmd.Body.RequestId, cmd.ActorId, cmd.Body.Questions)
		if err != nil {
			l.WithError(err).WithField("requestId", cmd.Body.RequestId).Error("Failed to process questionnaire send")
			emitErrorEvent(l, ctx, cmd.ActorId, "SEND_QUESTIONNAIRE_FAILED", err, cmd.Body.RequestId)
			return
		}

		l.WithField("questionnaireId", questionnaire.Id()).Info("Questionnaire send processed successfully")
	}
}

// handleAnswerQuestionnaire handles questionnaire answer commands
func handleAnswerQuestionnaire(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.AnswerQuestionnaireCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.AnswerQuestionnaireCommandBody]) {
		if cmd.Type != connectionMsg.CommandAnswerQuestionnaire {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":         cmd.ActorId,
			"questionnaireId": cmd.Body.QuestionnaireId,
		}).Debug("Processing questionnaire answer command")

		questionnaire, err := processor.AnswerQuestionnaireAndEmit(uuid.New(), cmd.Body.QuestionnaireId, cmd.ActorId, cmd.Body.Answers)
		if err != nil {
			l.WithError(err).WithField("questionnaireId", cmd.Body.QuestionnaireId).Error("Failed to process questionnaire answer")
			emitErrorEvent(l, ctx, cmd.ActorId, "ANSWER_QUESTIONNAIRE_FAILED", err, 0)
			return
		}

		l.WithField("questionnaireId", questionnaire.Id()).Info("Questionnaire answer processed successfully")
	}
}

// handleReject handles connection rejection commands
func handleReject(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.RejectCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.RejectCommandBody]) {
		if cmd.Type != connectionMsg.CommandReject {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":   cmd.ActorId,
			"requestId": cmd.Body.RequestId,
		}).Debug("Processing connection rejection command")

		request, err := processor.RejectAndEmit(uuid.New(), cmd.Body.RequestId, cmd.ActorId, cmd.Body.Reason)
		if err != nil {
			l.WithError(err).WithField("requestId", cmd.Body.RequestId).Error("Failed to process connection rejection")
			emitErrorEvent(l, ctx, cmd.ActorId, "REJECT_FAILED", err, cmd.Body.RequestId)
			return
		}

		l.WithField("requestId", request.Id()).Info("Connection rejection processed successfully")
	}
}

// handleRecheckCompletion handles completion recheck commands
func handleRecheckCompletion(l logrus.FieldLogger, ctx context.Context, processor connectionService.Processor) kafka.Handler[connectionMsg.Command[connectionMsg.RecheckCompletionCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, cmd connectionMsg.Command[connectionMsg.RecheckCompletionCommandBody]) {
		if cmd.Type != connectionMsg.CommandRecheckCompletion {
			return
		}

		l.WithFields(logrus.Fields{
			"actorId":   cmd.ActorId,
			"requestId": cmd.Body.RequestId,
		}).Debug("Processing completion recheck command")

		request, err := processor.RecheckCompletionAndEmit(uuid.New(), cmd.Body.RequestId)
		if err != nil {
			l.WithError(err).WithField("requestId", cmd.Body.RequestId).Error("Failed to process completion recheck")
			emitErrorEvent(l, ctx, cmd.ActorId, "RECHECK_COMPLETION_FAILED", err, cmd.Body.RequestId)
			return
		}

		l.WithFields(logrus.Fields{
			"requestId": request.Id(),
			"stage":     request.Stage().String(),
		}).Info("Completion recheck processed successfully")
	}
}

// InitConsumers initializes the connection command consumers
func InitConsumers(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
		return func(consumerGroupId string) {
			config := NewConfig(l)("connection_commands")(connectionMsg.EnvCommandTopic)(consumerGroupId)

			rf(config,
				consumer.SetHeaderParsers(consumer.SpanHeaderParser, consumer.TenantHeaderParser),
			)
		}
	}
}
