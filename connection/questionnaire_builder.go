package connection

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuestionnaireBuilder constructs Questionnaire models, enforcing question
// limits and status consistency at Build time.
type QuestionnaireBuilder struct {
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

// NewQuestionnaireBuilder creates a builder for a new pending questionnaire
func NewQuestionnaireBuilder(requestId uint32, senderId uint32, receiverId uint32, tenantId uuid.UUID) *QuestionnaireBuilder {
	now := time.Now()
	return &QuestionnaireBuilder{
		requestId:  requestId,
		senderId:   senderId,
		receiverId: receiverId,
		status:     QuestionnaireStatusPending,
		tenantId:   tenantId,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (b *QuestionnaireBuilder) SetId(id uint32) *QuestionnaireBuilder {
	b.id = id
	return b
}

// SetQuestions sets the ordered prompts for a questionnaire not yet answered
func (b *QuestionnaireBuilder) SetQuestions(texts []string) *QuestionnaireBuilder {
	questions := make([]Question, len(texts))
	for i, t := range texts {
		questions[i] = Question{text: t}
	}
	b.questions = questions
	return b
}

// SetAnsweredQuestions sets prompts with their recorded answers
func (b *QuestionnaireBuilder) SetAnsweredQuestions(questions []Question) *QuestionnaireBuilder {
	b.questions = questions
	return b
}

func (b *QuestionnaireBuilder) SetStatus(status QuestionnaireStatus) *QuestionnaireBuilder {
	b.status = status
	return b
}

func (b *QuestionnaireBuilder) SetCreatedAt(t time.Time) *QuestionnaireBuilder {
	b.createdAt = t
	return b
}

func (b *QuestionnaireBuilder) SetUpdatedAt(t time.Time) *QuestionnaireBuilder {
	b.updatedAt = t
	return b
}

// Build validates the assembled state and returns the immutable model
func (b *QuestionnaireBuilder) Build() (Questionnaire, error) {
	if b.requestId == 0 {
		return Questionnaire{}, errors.New("request id required")
	}
	if b.senderId == 0 || b.receiverId == 0 {
		return Questionnaire{}, errors.New("sender and receiver ids required")
	}
	if b.senderId == b.receiverId {
		return Questionnaire{}, errors.New("sender and receiver must differ")
	}
	if b.tenantId == uuid.Nil {
		return Questionnaire{}, errors.New("tenant id required")
	}
	if len(b.questions) < MinQuestions || len(b.questions) > MaxQuestions {
		return Questionnaire{}, ErrQuestionCount
	}
	for _, q := range b.questions {
		if strings.TrimSpace(q.text) == "" {
			return Questionnaire{}, ErrEmptyQuestion
		}
		answered := q.answer != nil && strings.TrimSpace(*q.answer) != ""
		if b.status == QuestionnaireStatusAnswered && !answered {
			return Questionnaire{}, errors.New("answered questionnaire requires an answer per question")
		}
		if b.status == QuestionnaireStatusPending && q.answer != nil {
			return Questionnaire{}, errors.New("pending questionnaire cannot carry answers")
		}
	}

	return Questionnaire{
		id:         b.id,
		requestId:  b.requestId,
		senderId:   b.senderId,
		receiverId: b.receiverId,
		questions:  b.questions,
		status:     b.status,
		tenantId:   b.tenantId,
		createdAt:  b.createdAt,
		updatedAt:  b.updatedAt,
	}, nil
}
