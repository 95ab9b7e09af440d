package connection

import (
	"time"

	"github.com/google/uuid"
)

// Request is an immutable view of a connection request pairing. Transition
// methods return an updated copy and never mutate the receiver.
type Request struct {
	id                     uint32
	senderId               uint32
	receiverId             uint32
	message                string
	stage                  Stage
	rejectionReason        *string
	hasUnansweredQuestions bool
	tenantId               uuid.UUID
	requestedAt            time.Time
	respondedAt            *time.Time
	completedAt            *time.Time
	rejectedAt             *time.Time
	createdAt              time.Time
	updatedAt              time.Time
}

func (r Request) Id() uint32 {
	return r.id
}

func (r Request) SenderId() uint32 {
	return r.senderId
}

func (r Request) ReceiverId() uint32 {
	return r.receiverId
}

func (r Request) Message() string {
	return r.message
}

func (r Request) Stage() Stage {
	return r.stage
}

func (r Request) RejectionReason() *string {
	return r.rejectionReason
}

func (r Request) HasUnansweredQuestions() bool {
	return r.hasUnansweredQuestions
}

func (r Request) TenantId() uuid.UUID {
	return r.tenantId
}

func (r Request) RequestedAt() time.Time {
	return r.requestedAt
}

func (r Request) RespondedAt() *time.Time {
	return r.respondedAt
}

func (r Request) CompletedAt() *time.Time {
	return r.completedAt
}

func (r Request) RejectedAt() *time.Time {
	return r.rejectedAt
}

func (r Request) CreatedAt() time.Time {
	return r.createdAt
}

func (r Request) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsParticipant returns true if the member is the sender or the receiver
func (r Request) IsParticipant(memberId uint32) bool {
	return r.senderId == memberId || r.receiverId == memberId
}

// IsSender returns true if the member initiated the request
func (r Request) IsSender(memberId uint32) bool {
	return r.senderId == memberId
}

// IsReceiver returns true if the member is the target of the request
func (r Request) IsReceiver(memberId uint32) bool {
	return r.receiverId == memberId
}

// Partner returns the other participant of the pairing
func (r Request) Partner(memberId uint32) uint32 {
	if r.senderId == memberId {
		return r.receiverId
	}
	return r.senderId
}

// CanRespond returns true if the receiver's approve or reject decision is still open
func (r Request) CanRespond() bool {
	return r.stage == StagePending
}

// CanSkipCompatibility returns true if the pairing can move straight to connected
func (r Request) CanSkipCompatibility() bool {
	return r.stage == StageAccepted
}

// CanSendQuestionnaire returns true if a custom questionnaire may be sent
func (r Request) CanSendQuestionnaire() bool {
	return r.stage.AtOrPastAcceptance()
}

// CanMessage returns true if the pairing has unlocked the messaging channel
func (r Request) CanMessage() bool {
	return r.stage.AllowsMessaging()
}

// Approve transitions a pending request to accepted
func (r Request) Approve() (Request, error) {
	if !r.stage.CanTransitionTo(StageAccepted) {
		return Request{}, ErrInvalidStage
	}
	now := time.Now()
	r.stage = StageAccepted
	r.respondedAt = &now
	r.updatedAt = now
	return r, nil
}

// Reject terminally rejects the pairing from any non-terminal stage
func (r Request) Reject(reason string) (Request, error) {
	if !r.stage.CanTransitionTo(StageRejected) {
		return Request{}, ErrInvalidStage
	}
	now := time.Now()
	r.stage = StageRejected
	r.rejectedAt = &now
	if r.respondedAt == nil {
		r.respondedAt = &now
	}
	if reason != "" {
		r.rejectionReason = &reason
	}
	r.hasUnansweredQuestions = false
	r.updatedAt = now
	return r, nil
}

// SkipCompatibility transitions an accepted pairing straight to connected
func (r Request) SkipCompatibility() (Request, error) {
	if r.stage != StageAccepted {
		return Request{}, ErrInvalidStage
	}
	now := time.Now()
	r.stage = StageConnected
	r.completedAt = &now
	r.updatedAt = now
	return r, nil
}

// WithQuestionnaireSent records that a questionnaire went out. Stages at or
// before questionnaire_sent move to questionnaire_sent; completed and
// connected pairings keep their stage and only carry the unanswered flag.
func (r Request) WithQuestionnaireSent() (Request, error) {
	if !r.stage.AtOrPastAcceptance() {
		return Request{}, ErrInvalidStage
	}
	if r.stage == StageAccepted {
		r.stage = StageQuestionnaireSent
	}
	r.hasUnansweredQuestions = true
	r.updatedAt = time.Now()
	return r, nil
}

// CompleteQuestionnaires transitions an accepted or questionnaire_sent pairing
// to questionnaire_completed
func (r Request) CompleteQuestionnaires() (Request, error) {
	if !r.stage.CanTransitionTo(StageQuestionnaireCompleted) {
		return Request{}, ErrInvalidStage
	}
	now := time.Now()
	r.stage = StageQuestionnaireCompleted
	r.completedAt = &now
	r.updatedAt = now
	return r, nil
}

// WithUnansweredQuestions returns a copy with the unanswered questionnaire flag set
func (r Request) WithUnansweredQuestions(pending bool) Request {
	r.hasUnansweredQuestions = pending
	r.updatedAt = time.Now()
	return r
}
