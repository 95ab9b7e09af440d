package connection

import (
	"context"
	"time"

	"atlas-introductions/kafka/message"
	connectionMsg "atlas-introductions/kafka/message/connection"
	"atlas-introductions/kafka/producer"
	"atlas-introductions/profile"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MemberDeletedRejectionReason is recorded when a pairing closes because a
// participant's account was deleted.
const MemberDeletedRejectionReason = "member account deleted"

const (
	CompletionViaCompatibility = "compatibility"
	CompletionViaCustom        = "custom"
)

// Processor drives the connection request lifecycle
type Processor interface {
	WithProfileProcessor(profileProcessor profile.Processor) Processor

	// Request lifecycle
	Request(senderId, receiverId uint32, msg string) model.Provider[Request]
	RequestAndEmit(transactionId uuid.UUID, senderId, receiverId uint32, msg string) (Request, error)
	Respond(requestId, actorId uint32, decision string) model.Provider[Request]
	RespondAndEmit(transactionId uuid.UUID, requestId, actorId uint32, decision string) (Request, error)
	Reject(requestId, actorId uint32, reason string) model.Provider[Request]
	RejectAndEmit(transactionId uuid.UUID, requestId, actorId uint32, reason string) (Request, error)

	// Compatibility questionnaire
	SkipCompatibility(requestId, actorId uint32) model.Provider[Request]
	SkipCompatibilityAndEmit(transactionId uuid.UUID, requestId, actorId uint32) (Request, error)
	SubmitCompatibility(memberId uint32, background profile.ReligiousBackground, answers profile.Answers) model.Provider[[]Request]
	SubmitCompatibilityAndEmit(transactionId uuid.UUID, memberId uint32, background profile.ReligiousBackground, answers profile.Answers) ([]Request, error)
	RecheckCompletion(requestId uint32) model.Provider[Request]
	RecheckCompletionAndEmit(transactionId uuid.UUID, requestId uint32) (Request, error)
	SweepAcceptedPairings() model.Provider[[]Request]
	SweepAcceptedPairingsAndEmit(transactionId uuid.UUID) ([]Request, error)

	// Custom questionnaires
	SendQuestionnaire(requestId, senderId uint32, questions []string) model.Provider[Questionnaire]
	SendQuestionnaireAndEmit(transactionId uuid.UUID, requestId, senderId uint32, questions []string) (Questionnaire, error)
	AnswerQuestionnaire(questionnaireId, actorId uint32, answers []string) model.Provider[Questionnaire]
	AnswerQuestionnaireAndEmit(transactionId uuid.UUID, questionnaireId, actorId uint32, answers []string) (Questionnaire, error)

	// Member lifecycle
	HandleMemberDeletion(memberId uint32) model.Provider[[]Request]
	HandleMemberDeletionAndEmit(transactionId uuid.UUID, memberId uint32) ([]Request, error)

	// Queries
	GetById(requestId uint32) model.Provider[Request]
	GetByParticipant(memberId uint32) model.Provider[[]Request]
	GetQuestionnaires(requestId, actorId uint32) model.Provider[[]Questionnaire]
	CanMessage(requestId uint32) model.Provider[bool]
}

// ProcessorImpl implements the Processor interface
type ProcessorImpl struct {
	log              logrus.FieldLogger
	ctx              context.Context
	db               *gorm.DB
	t                tenant.Model
	producer         producer.Provider
	profileProcessor profile.Processor
}

// NewProcessor creates a new processor instance
func NewProcessor(log logrus.FieldLogger, ctx context.Context, db *gorm.DB) Processor {
	return &ProcessorImpl{
		log:              log,
		ctx:              ctx,
		db:               db,
		t:                tenant.MustFromContext(ctx),
		producer:         producer.ProviderImpl(log)(ctx),
		profileProcessor: profile.NewProcessor(log, ctx),
	}
}

// WithProfileProcessor creates a new processor instance with a custom profile processor for testing
func (p *ProcessorImpl) WithProfileProcessor(profileProcessor profile.Processor) Processor {
	return &ProcessorImpl{
		log:              p.log,
		ctx:              p.ctx,
		db:               p.db,
		t:                p.t,
		producer:         p.producer,
		profileProcessor: profileProcessor,
	}
}

// Request creates a new pending connection request between two members
func (p *ProcessorImpl) Request(senderId, receiverId uint32, msg string) model.Provider[Request] {
	return func() (Request, error) {
		p.log.WithFields(logrus.Fields{
			"senderId":   senderId,
			"receiverId": receiverId,
		}).Debug("Processing connection request")

		if senderId == receiverId {
			return Request{}, ErrSelfPairing
		}

		var result Request
		err := p.db.Transaction(func(tx *gorm.DB) error {
			existing, err := GetActivePairingProvider(tx, p.log)(senderId, receiverId, p.t.Id())()
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrPairingExists
			}

			entity, err := CreateRequest(tx, p.log)(senderId, receiverId, msg, p.t.Id())()
			if err != nil {
				return err
			}

			result, err = Make(entity)
			return err
		})
		if err != nil {
			return Request{}, err
		}

		return result, nil
	}
}

// RequestAndEmit creates a request and notifies the receiver
func (p *ProcessorImpl) RequestAndEmit(transactionId uuid.UUID, senderId, receiverId uint32, msg string) (Request, error) {
	request, err := p.Request(senderId, receiverId, msg)()
	if err != nil {
		return Request{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		return buf.Put(connectionMsg.EnvEventStatusTopic,
			RequestCreatedEventProvider(receiverId, request.Id(), senderId, receiverId, msg, request.RequestedAt()))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit request created event")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"requestId":     request.Id(),
	}).Debug("RequestCreated event emitted")

	return request, nil
}

// Respond records the receiver's approve or reject decision on a pending request
func (p *ProcessorImpl) Respond(requestId, actorId uint32, decision string) model.Provider[Request] {
	return func() (Request, error) {
		p.log.WithFields(logrus.Fields{
			"requestId": requestId,
			"actorId":   actorId,
			"decision":  decision,
		}).Debug("Processing request response")

		if decision != connectionMsg.RespondDecisionApprove && decision != connectionMsg.RespondDecisionReject {
			return Request{}, ErrInvalidDecision
		}

		var result Request
		err := p.db.Transaction(func(tx *gorm.DB) error {
			request, err := GetRequestByIdProvider(tx, p.log)(requestId, p.t.Id())()
			if err != nil {
				return err
			}
			if !request.IsReceiver(actorId) {
				return ErrNotReceiver
			}
			if !request.CanRespond() {
				return ErrAlreadyDecided
			}

			if decision == connectionMsg.RespondDecisionApprove {
				result, err = request.Approve()
			} else {
				result, err = request.Reject("")
			}
			if err != nil {
				return err
			}

			_, err = UpdateRequest(tx, p.log)(result)()
			return err
		})
		if err != nil {
			return Request{}, err
		}

		return result, nil
	}
}

// RespondAndEmit records a decision and notifies the sender
func (p *ProcessorImpl) RespondAndEmit(transactionId uuid.UUID, requestId, actorId uint32, decision string) (Request, error) {
	request, err := p.Respond(requestId, actorId, decision)()
	if err != nil {
		return Request{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if request.Stage() == StageAccepted {
			respondedAt := request.UpdatedAt()
			if request.RespondedAt() != nil {
				respondedAt = *request.RespondedAt()
			}
			return buf.Put(connectionMsg.EnvEventStatusTopic,
				RequestApprovedEventProvider(request.SenderId(), request.Id(), request.SenderId(), request.ReceiverId(), respondedAt))
		}
		return buf.Put(connectionMsg.EnvEventStatusTopic,
			ConnectionRejectedEventProvider(request.SenderId(), request))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit request response event")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"requestId":     request.Id(),
		"stage":         request.Stage().String(),
	}).Debug("Request response event emitted")

	return request, nil
}

// Reject terminally rejects a pairing from any non-terminal stage
func (p *ProcessorImpl) Reject(requestId, actorId uint32, reason string) model.Provider[Request] {
	return func() (Request, error) {
		p.log.WithFields(logrus.Fields{
			"requestId": requestId,
			"actorId":   actorId,
		}).Debug("Processing connection rejection")

		var result Request
		err := p.db.Transaction(func(tx *gorm.DB) error {
			request, err := GetRequestByIdProvider(tx, p.log)(requestId, p.t.Id())()
			if err != nil {
				return err
			}
			if !request.IsParticipant(actorId) {
				return ErrNotParticipant
			}

			result, err = request.Reject(reason)
			if err != nil {
				return err
			}

			_, err = UpdateRequest(tx, p.log)(result)()
			return err
		})
		if err != nil {
			return Request{}, err
		}

		return result, nil
	}
}

// RejectAndEmit rejects a pairing and notifies both participants
func (p *ProcessorImpl) RejectAndEmit(transactionId uuid.UUID, requestId, actorId uint32, reason string) (Request, error) {
	request, err := p.Reject(requestId, actorId, reason)()
	if err != nil {
		return Request{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if err := buf.Put(connectionMsg.EnvEventStatusTopic, ConnectionRejectedEventProvider(request.SenderId(), request)); err != nil {
			return err
		}
		return buf.Put(connectionMsg.EnvEventStatusTopic, ConnectionRejectedEventProvider(request.ReceiverId(), request))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit connection rejected events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"requestId":     request.Id(),
	}).Debug("ConnectionRejected events emitted")

	return request, nil
}

// SkipCompatibility moves an accepted pairing straight to connected
func (p *ProcessorImpl) SkipCompatibility(requestId, actorId uint32) model.Provider[Request] {
	return func() (Request, error) {
		p.log.WithFields(logrus.Fields{
			"requestId": requestId,
			"actorId":   actorId,
		}).Debug("Processing compatibility skip")

		var result Request
		err := p.db.Transaction(func(tx *gorm.DB) error {
			request, err := GetRequestByIdProvider(tx, p.log)(requestId, p.t.Id())()
			if err != nil {
				return err
			}
			if !request.IsParticipant(actorId) {
				return ErrNotParticipant
			}

			result, err = request.SkipCompatibility()
			if err != nil {
				return err
			}

			_, err = UpdateRequest(tx, p.log)(result)()
			return err
		})
		if err != nil {
			return Request{}, err
		}

		return result, nil
	}
}

// SkipCompatibilityAndEmit skips the questionnaire phase and notifies both participants
func (p *ProcessorImpl) SkipCompatibilityAndEmit(transactionId uuid.UUID, requestId, actorId uint32) (Request, error) {
	request, err := p.SkipCompatibility(requestId, actorId)()
	if err != nil {
		return Request{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if err := buf.Put(connectionMsg.EnvEventStatusTopic, ConnectionEstablishedEventProvider(request.SenderId(), request)); err != nil {
			return err
		}
		return buf.Put(connectionMsg.EnvEventStatusTopic, ConnectionEstablishedEventProvider(request.ReceiverId(), request))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit connection established events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"requestId":     request.Id(),
	}).Debug("ConnectionEstablished events emitted")

	return request, nil
}

// SubmitCompatibility stores a member's compatibility answers and re-evaluates
// mutual completion on every accepted pairing the member participates in. The
// profile write lands before any pairing is re-read, so concurrent submissions
// by both partners converge on at least one of them observing both profiles
// complete.
func (p *ProcessorImpl) SubmitCompatibility(memberId uint32, background profile.ReligiousBackground, answers profile.Answers) model.Provider[[]Request] {
	return func() ([]Request, error) {
		p.log.WithFields(logrus.Fields{
			"memberId":   memberId,
			"background": background,
		}).Debug("Processing compatibility submission")

		if !profile.ValidBackground(background) {
			return nil, ErrUnknownBackground
		}

		own, err := p.profileProcessor.Store(memberId, background, answers)
		if err != nil {
			return nil, err
		}

		if !profile.IsComplete(own) {
			return []Request{}, nil
		}

		advanced := make([]Request, 0)
		err = p.db.Transaction(func(tx *gorm.DB) error {
			pairings, err := GetAcceptedRequestsByParticipantProvider(tx, p.log)(memberId, p.t.Id())()
			if err != nil {
				return err
			}

			for _, pairing := range pairings {
				partner, err := p.profileProcessor.GetById(pairing.Partner(memberId))
				if err != nil {
					p.log.WithError(err).WithField("requestId", pairing.Id()).Debug("Partner profile unavailable, pairing stays accepted")
					continue
				}
				if !profile.BothComplete(own, partner) {
					continue
				}

				completed, err := pairing.CompleteQuestionnaires()
				if err != nil {
					return err
				}
				if _, err := UpdateRequest(tx, p.log)(completed)(); err != nil {
					return err
				}
				advanced = append(advanced, completed)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		return advanced, nil
	}
}

// SubmitCompatibilityAndEmit stores answers and emits recorded plus completion events
func (p *ProcessorImpl) SubmitCompatibilityAndEmit(transactionId uuid.UUID, memberId uint32, background profile.ReligiousBackground, answers profile.Answers) ([]Request, error) {
	advanced, err := p.SubmitCompatibility(memberId, background, answers)()
	if err != nil {
		return nil, err
	}

	own, err := p.profileProcessor.GetById(memberId)
	complete := err == nil && profile.IsComplete(own)

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if err := buf.Put(connectionMsg.EnvEventStatusTopic,
			CompatibilityRecordedEventProvider(memberId, string(background), complete, time.Now())); err != nil {
			return err
		}
		for _, request := range advanced {
			if err := buf.Put(connectionMsg.EnvEventStatusTopic,
				QuestionnaireCompletedEventProvider(request.SenderId(), request, CompletionViaCompatibility)); err != nil {
				return err
			}
			if err := buf.Put(connectionMsg.EnvEventStatusTopic,
				QuestionnaireCompletedEventProvider(request.ReceiverId(), request, CompletionViaCompatibility)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit compatibility events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"memberId":      memberId,
		"advanced":      len(advanced),
	}).Debug("Compatibility events emitted")

	return advanced, nil
}

// recheckCompletion re-evaluates mutual compatibility completion for a single
// pairing. Pairings past the accepted stage are left untouched.
func (p *ProcessorImpl) recheckCompletion(requestId uint32) (Request, bool, error) {
	var result Request
	advanced := false
	err := p.db.Transaction(func(tx *gorm.DB) error {
		request, err := GetRequestByIdProvider(tx, p.log)(requestId, p.t.Id())()
		if err != nil {
			return err
		}
		result = request
		if request.Stage() != StageAccepted {
			return nil
		}

		sender, err := p.profileProcessor.GetById(request.SenderId())
		if err != nil {
			return nil
		}
		receiver, err := p.profileProcessor.GetById(request.ReceiverId())
		if err != nil {
			return nil
		}
		if !profile.BothComplete(sender, receiver) {
			return nil
		}

		completed, err := request.CompleteQuestionnaires()
		if err != nil {
			return err
		}
		if _, err := UpdateRequest(tx, p.log)(completed)(); err != nil {
			return err
		}
		result = completed
		advanced = true
		return nil
	})
	if err != nil {
		return Request{}, false, err
	}
	return result, advanced, nil
}

// RecheckCompletion re-evaluates compatibility completion for a pairing
func (p *ProcessorImpl) RecheckCompletion(requestId uint32) model.Provider[Request] {
	return func() (Request, error) {
		request, _, err := p.recheckCompletion(requestId)
		return request, err
	}
}

// RecheckCompletionAndEmit re-evaluates completion and emits events when the pairing advances
func (p *ProcessorImpl) RecheckCompletionAndEmit(transactionId uuid.UUID, requestId uint32) (Request, error) {
	request, advanced, err := p.recheckCompletion(requestId)
	if err != nil {
		return Request{}, err
	}
	if !advanced {
		return request, nil
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if err := buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireCompletedEventProvider(request.SenderId(), request, CompletionViaCompatibility)); err != nil {
			return err
		}
		return buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireCompletedEventProvider(request.ReceiverId(), request, CompletionViaCompatibility))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit questionnaire completed events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"requestId":     request.Id(),
	}).Debug("QuestionnaireCompleted events emitted")

	return request, nil
}

// SweepAcceptedPairings rechecks completion for every accepted pairing in the tenant
func (p *ProcessorImpl) SweepAcceptedPairings() model.Provider[[]Request] {
	return func() ([]Request, error) {
		pairings, err := GetAcceptedRequestsProvider(p.db, p.log)(p.t.Id())()
		if err != nil {
			return nil, err
		}

		advanced := make([]Request, 0)
		for _, pairing := range pairings {
			request, moved, err := p.recheckCompletion(pairing.Id())
			if err != nil {
				p.log.WithError(err).WithField("requestId", pairing.Id()).Warn("Unable to recheck pairing completion")
				continue
			}
			if moved {
				advanced = append(advanced, request)
			}
		}

		return advanced, nil
	}
}

// SweepAcceptedPairingsAndEmit rechecks every accepted pairing and emits completion events
func (p *ProcessorImpl) SweepAcceptedPairingsAndEmit(transactionId uuid.UUID) ([]Request, error) {
	advanced, err := p.SweepAcceptedPairings()()
	if err != nil {
		return nil, err
	}
	if len(advanced) == 0 {
		return advanced, nil
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		for _, request := range advanced {
			if err := buf.Put(connectionMsg.EnvEventStatusTopic,
				QuestionnaireCompletedEventProvider(request.SenderId(), request, CompletionViaCompatibility)); err != nil {
				return err
			}
			if err := buf.Put(connectionMsg.EnvEventStatusTopic,
				QuestionnaireCompletedEventProvider(request.ReceiverId(), request, CompletionViaCompatibility)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit sweep completion events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"advanced":      len(advanced),
	}).Debug("Completion sweep events emitted")

	return advanced, nil
}

// SendQuestionnaire creates a custom questionnaire from a participant to the
// other member of the pairing
func (p *ProcessorImpl) SendQuestionnaire(requestId, senderId uint32, questions []string) model.Provider[Questionnaire] {
	return func() (Questionnaire, error) {
		p.log.WithFields(logrus.Fields{
			"requestId": requestId,
			"senderId":  senderId,
		}).Debug("Processing questionnaire send")

		var result Questionnaire
		err := p.db.Transaction(func(tx *gorm.DB) error {
			request, err := GetRequestByIdProvider(tx, p.log)(requestId, p.t.Id())()
			if err != nil {
				return err
			}
			if !request.IsParticipant(senderId) {
				return ErrNotParticipant
			}
			if !request.CanSendQuestionnaire() {
				return ErrInvalidStage
			}

			questionnaire, err := NewQuestionnaireBuilder(requestId, senderId, request.Partner(senderId), p.t.Id()).
				SetQuestions(questions).
				Build()
			if err != nil {
				return err
			}

			entity, err := CreateQuestionnaire(tx, p.log)(questionnaire)()
			if err != nil {
				return err
			}

			updated, err := request.WithQuestionnaireSent()
			if err != nil {
				return err
			}
			if _, err := UpdateRequest(tx, p.log)(updated)(); err != nil {
				return err
			}

			result, err = MakeQuestionnaire(entity)
			return err
		})
		if err != nil {
			return Questionnaire{}, err
		}

		return result, nil
	}
}

// SendQuestionnaireAndEmit creates a questionnaire and notifies its receiver
func (p *ProcessorImpl) SendQuestionnaireAndEmit(transactionId uuid.UUID, requestId, senderId uint32, questions []string) (Questionnaire, error) {
	questionnaire, err := p.SendQuestionnaire(requestId, senderId, questions)()
	if err != nil {
		return Questionnaire{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		return buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireSentEventProvider(questionnaire.ReceiverId(), questionnaire))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit questionnaire sent event")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId":   transactionId,
		"questionnaireId": questionnaire.Id(),
	}).Debug("QuestionnaireSent event emitted")

	return questionnaire, nil
}

// answerQuestionnaire records answers and re-evaluates the questionnaire round
// for the pairing. The fresh read of all questionnaires happens after the
// answer is written, so concurrent answers by both members converge.
func (p *ProcessorImpl) answerQuestionnaire(questionnaireId, actorId uint32, answers []string) (Questionnaire, Request, bool, error) {
	var resultQuestionnaire Questionnaire
	var resultRequest Request
	roundCompleted := false

	err := p.db.Transaction(func(tx *gorm.DB) error {
		questionnaire, err := GetQuestionnaireByIdProvider(tx, p.log)(questionnaireId, p.t.Id())()
		if err != nil {
			return err
		}
		if !questionnaire.CanAnswer(actorId) {
			if questionnaire.ReceiverId() != actorId {
				return ErrNotQuestionnaireReceiver
			}
			return ErrAlreadyAnswered
		}

		answered, err := questionnaire.Answer(answers)
		if err != nil {
			return err
		}
		if _, err := UpdateQuestionnaire(tx, p.log)(answered)(); err != nil {
			return err
		}
		resultQuestionnaire = answered

		request, err := GetRequestByIdProvider(tx, p.log)(questionnaire.RequestId(), p.t.Id())()
		if err != nil {
			return err
		}

		all, err := GetQuestionnairesByRequestProvider(tx, p.log)(questionnaire.RequestId(), p.t.Id())()
		if err != nil {
			return err
		}

		anyPending := false
		allAnswered := true
		for _, q := range all {
			if !q.IsAnswered() {
				anyPending = true
				allAnswered = false
			}
		}

		updated := request
		changed := false
		if len(all) >= 2 && allAnswered && request.Stage().CanTransitionTo(StageQuestionnaireCompleted) {
			updated, err = request.CompleteQuestionnaires()
			if err != nil {
				return err
			}
			roundCompleted = true
			changed = true
		}
		if updated.HasUnansweredQuestions() != anyPending {
			updated = updated.WithUnansweredQuestions(anyPending)
			changed = true
		}
		if changed {
			if _, err := UpdateRequest(tx, p.log)(updated)(); err != nil {
				return err
			}
		}
		resultRequest = updated
		return nil
	})
	if err != nil {
		return Questionnaire{}, Request{}, false, err
	}

	return resultQuestionnaire, resultRequest, roundCompleted, nil
}

// AnswerQuestionnaire records the receiver's answers to a pending questionnaire
func (p *ProcessorImpl) AnswerQuestionnaire(questionnaireId, actorId uint32, answers []string) model.Provider[Questionnaire] {
	return func() (Questionnaire, error) {
		questionnaire, _, _, err := p.answerQuestionnaire(questionnaireId, actorId, answers)
		return questionnaire, err
	}
}

// AnswerQuestionnaireAndEmit records answers and emits answered plus completion events
func (p *ProcessorImpl) AnswerQuestionnaireAndEmit(transactionId uuid.UUID, questionnaireId, actorId uint32, answers []string) (Questionnaire, error) {
	questionnaire, request, roundCompleted, err := p.answerQuestionnaire(questionnaireId, actorId, answers)
	if err != nil {
		return Questionnaire{}, err
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		if err := buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireAnsweredEventProvider(questionnaire.SenderId(), questionnaire)); err != nil {
			return err
		}
		if !roundCompleted {
			return nil
		}
		if err := buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireCompletedEventProvider(request.SenderId(), request, CompletionViaCustom)); err != nil {
			return err
		}
		return buf.Put(connectionMsg.EnvEventStatusTopic,
			QuestionnaireCompletedEventProvider(request.ReceiverId(), request, CompletionViaCustom))
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit questionnaire answered events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId":   transactionId,
		"questionnaireId": questionnaire.Id(),
		"roundCompleted":  roundCompleted,
	}).Debug("QuestionnaireAnswered events emitted")

	return questionnaire, nil
}

// HandleMemberDeletion terminally closes every active pairing a deleted member participates in
func (p *ProcessorImpl) HandleMemberDeletion(memberId uint32) model.Provider[[]Request] {
	return func() ([]Request, error) {
		p.log.WithField("memberId", memberId).Debug("Processing member deletion")

		closed := make([]Request, 0)
		err := p.db.Transaction(func(tx *gorm.DB) error {
			pairings, err := GetActiveRequestsByParticipantProvider(tx, p.log)(memberId, p.t.Id())()
			if err != nil {
				return err
			}

			for _, pairing := range pairings {
				rejected, err := pairing.Reject(MemberDeletedRejectionReason)
				if err != nil {
					return err
				}
				if _, err := UpdateRequest(tx, p.log)(rejected)(); err != nil {
					return err
				}
				closed = append(closed, rejected)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		return closed, nil
	}
}

// HandleMemberDeletionAndEmit closes pairings and notifies the surviving participants
func (p *ProcessorImpl) HandleMemberDeletionAndEmit(transactionId uuid.UUID, memberId uint32) ([]Request, error) {
	closed, err := p.HandleMemberDeletion(memberId)()
	if err != nil {
		return nil, err
	}
	if len(closed) == 0 {
		return closed, nil
	}

	err = message.Emit(p.producer)(func(buf *message.Buffer) error {
		for _, request := range closed {
			if err := buf.Put(connectionMsg.EnvEventStatusTopic,
				ConnectionRejectedEventProvider(request.Partner(memberId), request)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.log.WithError(err).Warn("Unable to emit member deletion rejection events")
	}

	p.log.WithFields(logrus.Fields{
		"transactionId": transactionId,
		"memberId":      memberId,
		"closed":        len(closed),
	}).Debug("Member deletion events emitted")

	return closed, nil
}

// GetById retrieves a connection request by ID
func (p *ProcessorImpl) GetById(requestId uint32) model.Provider[Request] {
	return GetRequestByIdProvider(p.db, p.log)(requestId, p.t.Id())
}

// GetByParticipant retrieves all connection requests a member participates in
func (p *ProcessorImpl) GetByParticipant(memberId uint32) model.Provider[[]Request] {
	return GetRequestsByParticipantProvider(p.db, p.log)(memberId, p.t.Id())
}

// GetQuestionnaires retrieves all questionnaires under a request for a participant
func (p *ProcessorImpl) GetQuestionnaires(requestId, actorId uint32) model.Provider[[]Questionnaire] {
	return func() ([]Questionnaire, error) {
		request, err := GetRequestByIdProvider(p.db, p.log)(requestId, p.t.Id())()
		if err != nil {
			return nil, err
		}
		if !request.IsParticipant(actorId) {
			return nil, ErrNotParticipant
		}
		return GetQuestionnairesByRequestProvider(p.db, p.log)(requestId, p.t.Id())()
	}
}

// CanMessage evaluates the messaging gate for a pairing
func (p *ProcessorImpl) CanMessage(requestId uint32) model.Provider[bool] {
	return func() (bool, error) {
		request, err := GetRequestByIdProvider(p.db, p.log)(requestId, p.t.Id())()
		if err != nil {
			return false, err
		}
		return request.CanMessage(), nil
	}
}
