package connection

import (
	"time"

	connectionMsg "atlas-introductions/kafka/message/connection"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

// RequestCreatedEventProvider creates a provider for request created events
func RequestCreatedEventProvider(memberId uint32, requestId uint32, senderId uint32, receiverId uint32, msg string, requestedAt time.Time) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.RequestCreatedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeRequestCreated,
		Body: connectionMsg.RequestCreatedEventBody{
			RequestId:   requestId,
			SenderId:    senderId,
			ReceiverId:  receiverId,
			Message:     msg,
			RequestedAt: requestedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// RequestApprovedEventProvider creates a provider for request approved events
func RequestApprovedEventProvider(memberId uint32, requestId uint32, senderId uint32, receiverId uint32, respondedAt time.Time) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.RequestApprovedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeRequestApproved,
		Body: connectionMsg.RequestApprovedEventBody{
			RequestId:   requestId,
			SenderId:    senderId,
			ReceiverId:  receiverId,
			RespondedAt: respondedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// CompatibilityRecordedEventProvider creates a provider for compatibility recorded events
func CompatibilityRecordedEventProvider(memberId uint32, background string, complete bool, recordedAt time.Time) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.CompatibilityRecordedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeCompatibilityRecorded,
		Body: connectionMsg.CompatibilityRecordedEventBody{
			ReligiousBackground: background,
			Complete:            complete,
			RecordedAt:          recordedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// QuestionnaireSentEventProvider creates a provider for questionnaire sent events
func QuestionnaireSentEventProvider(memberId uint32, questionnaire Questionnaire) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.QuestionnaireSentEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeQuestionnaireSent,
		Body: connectionMsg.QuestionnaireSentEventBody{
			RequestId:       questionnaire.RequestId(),
			QuestionnaireId: questionnaire.Id(),
			SenderId:        questionnaire.SenderId(),
			ReceiverId:      questionnaire.ReceiverId(),
			QuestionCount:   len(questionnaire.Questions()),
			SentAt:          questionnaire.CreatedAt(),
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// QuestionnaireAnsweredEventProvider creates a provider for questionnaire answered events
func QuestionnaireAnsweredEventProvider(memberId uint32, questionnaire Questionnaire) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.QuestionnaireAnsweredEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeQuestionnaireAnswered,
		Body: connectionMsg.QuestionnaireAnsweredEventBody{
			RequestId:       questionnaire.RequestId(),
			QuestionnaireId: questionnaire.Id(),
			ReceiverId:      questionnaire.ReceiverId(),
			AnsweredAt:      questionnaire.UpdatedAt(),
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// QuestionnaireCompletedEventProvider creates a provider for questionnaire completed events
func QuestionnaireCompletedEventProvider(memberId uint32, request Request, via string) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	completedAt := time.Now()
	if request.CompletedAt() != nil {
		completedAt = *request.CompletedAt()
	}
	value := &connectionMsg.Event[connectionMsg.QuestionnaireCompletedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeQuestionnaireCompleted,
		Body: connectionMsg.QuestionnaireCompletedEventBody{
			RequestId:   request.Id(),
			SenderId:    request.SenderId(),
			ReceiverId:  request.ReceiverId(),
			Via:         via,
			CompletedAt: completedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// ConnectionEstablishedEventProvider creates a provider for connection established events
func ConnectionEstablishedEventProvider(memberId uint32, request Request) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	connectedAt := time.Now()
	if request.CompletedAt() != nil {
		connectedAt = *request.CompletedAt()
	}
	value := &connectionMsg.Event[connectionMsg.ConnectionEstablishedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeConnectionEstablished,
		Body: connectionMsg.ConnectionEstablishedEventBody{
			RequestId:   request.Id(),
			SenderId:    request.SenderId(),
			ReceiverId:  request.ReceiverId(),
			ConnectedAt: connectedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// ConnectionRejectedEventProvider creates a provider for connection rejected events
func ConnectionRejectedEventProvider(memberId uint32, request Request) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	reason := ""
	if request.RejectionReason() != nil {
		reason = *request.RejectionReason()
	}
	rejectedAt := time.Now()
	if request.RejectedAt() != nil {
		rejectedAt = *request.RejectedAt()
	}
	value := &connectionMsg.Event[connectionMsg.ConnectionRejectedEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeConnectionRejected,
		Body: connectionMsg.ConnectionRejectedEventBody{
			RequestId:  request.Id(),
			SenderId:   request.SenderId(),
			ReceiverId: request.ReceiverId(),
			Reason:     reason,
			RejectedAt: rejectedAt,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

// ErrorEventProvider creates a provider for lifecycle error events
func ErrorEventProvider(memberId uint32, errorType string, errorCode string, requestId uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(memberId))
	value := &connectionMsg.Event[connectionMsg.ErrorEventBody]{
		MemberId: memberId,
		Type:     connectionMsg.EventStatusTypeError,
		Body: connectionMsg.ErrorEventBody{
			Type:      errorType,
			ErrorCode: errorCode,
			RequestId: requestId,
		},
	}
	return producer.SingleMessageProvider(key, value)
}
