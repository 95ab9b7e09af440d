package connection

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinQuestions = 1
	MaxQuestions = 10
)

// Question is a single prompt within a custom questionnaire. Answer is nil
// until the receiver responds.
type Question struct {
	text   string
	answer *string
}

func (q Question) Text() string {
	return q.text
}

func (q Question) Answer() *string {
	return q.answer
}

// Questionnaire is an immutable view of a custom questionnaire sent within a
// pairing. At most one exists per request and sending member.
type Questionnaire struct {
	id         uint32
	requestId  uint32
	senderId   uint32
	receiverId uint32
	questions  []Question
	status     QuestionnaireStatus
	tenantId   uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func (q Questionnaire) Id() uint32 {
	return q.id
}

func (q Questionnaire) RequestId() uint32 {
	return q.requestId
}

func (q Questionnaire) SenderId() uint32 {
	return q.senderId
}

func (q Questionnaire) ReceiverId() uint32 {
	return q.receiverId
}

func (q Questionnaire) Questions() []Question {
	out := make([]Question, len(q.questions))
	copy(out, q.questions)
	return out
}

func (q Questionnaire) Status() QuestionnaireStatus {
	return q.status
}

func (q Questionnaire) TenantId() uuid.UUID {
	return q.tenantId
}

func (q Questionnaire) CreatedAt() time.Time {
	return q.createdAt
}

func (q Questionnaire) UpdatedAt() time.Time {
	return q.updatedAt
}

// IsAnswered returns true once the receiver has answered every question
func (q Questionnaire) IsAnswered() bool {
	return q.status == QuestionnaireStatusAnswered
}

// CanAnswer returns true if the member may answer the questionnaire
func (q Questionnaire) CanAnswer(memberId uint32) bool {
	return q.receiverId == memberId && q.status == QuestionnaireStatusPending
}

// Answer records answers for every question in order. A questionnaire is
// answered exactly once and all questions are answered together.
func (q Questionnaire) Answer(answers []string) (Questionnaire, error) {
	if q.status != QuestionnaireStatusPending {
		return Questionnaire{}, ErrAlreadyAnswered
	}
	if len(answers) != len(q.questions) {
		return Questionnaire{}, ErrAnswerCount
	}
	questions := make([]Question, len(q.questions))
	for i, question := range q.questions {
		a := answers[i]
		if strings.TrimSpace(a) == "" {
			return Questionnaire{}, ErrEmptyAnswer
		}
		questions[i] = Question{text: question.text, answer: &a}
	}
	q.questions = questions
	q.status = QuestionnaireStatusAnswered
	q.updatedAt = time.Now()
	return q, nil
}
