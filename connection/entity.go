package connection

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{}, &QuestionnaireEntity{})
}

type Entity struct {
	ID                     uint32     `gorm:"primaryKey;autoIncrement;not null"`
	TenantId               uuid.UUID  `gorm:"not null;index"`
	SenderId               uint32     `gorm:"not null;index"`
	ReceiverId             uint32     `gorm:"not null;index"`
	Message                string     `gorm:"type:text"`
	Stage                  Stage      `gorm:"not null;default:0"`
	RejectionReason        *string    `gorm:"type:text"`
	HasUnansweredQuestions bool       `gorm:"not null;default:false"`
	RequestedAt            time.Time  `gorm:"not null"`
	RespondedAt            *time.Time
	CompletedAt            *time.Time
	RejectedAt             *time.Time
	CreatedAt              time.Time `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`
}

func (e Entity) TableName() string {
	return "connection_requests"
}

// QuestionnaireEntity persists a custom questionnaire. The composite unique
// index makes one questionnaire per request and sending member a storage
// level invariant.
type QuestionnaireEntity struct {
	ID         uint32              `gorm:"primaryKey;autoIncrement;not null"`
	TenantId   uuid.UUID           `gorm:"not null;uniqueIndex:idx_questionnaire_request_sender"`
	RequestId  uint32              `gorm:"not null;uniqueIndex:idx_questionnaire_request_sender"`
	SenderId   uint32              `gorm:"not null;uniqueIndex:idx_questionnaire_request_sender"`
	ReceiverId uint32              `gorm:"not null"`
	Questions  string              `gorm:"type:text;not null"`
	Status     QuestionnaireStatus `gorm:"not null;default:0"`
	CreatedAt  time.Time           `gorm:"not null"`
	UpdatedAt  time.Time           `gorm:"not null"`
}

func (e QuestionnaireEntity) TableName() string {
	return "custom_questionnaires"
}

// Make converts a request entity to its domain model
func Make(e Entity) (Request, error) {
	return NewBuilder(e.SenderId, e.ReceiverId, e.TenantId).
		SetId(e.ID).
		SetMessage(e.Message).
		SetStage(e.Stage).
		SetRejectionReason(e.RejectionReason).
		SetHasUnansweredQuestions(e.HasUnansweredQuestions).
		SetRequestedAt(e.RequestedAt).
		SetRespondedAt(e.RespondedAt).
		SetCompletedAt(e.CompletedAt).
		SetRejectedAt(e.RejectedAt).
		SetCreatedAt(e.CreatedAt).
		SetUpdatedAt(e.UpdatedAt).
		Build()
}

// ToEntity converts a request model to its persistence entity
func ToEntity(r Request) Entity {
	return Entity{
		ID:                     r.Id(),
		TenantId:               r.TenantId(),
		SenderId:               r.SenderId(),
		ReceiverId:             r.ReceiverId(),
		Message:                r.Message(),
		Stage:                  r.Stage(),
		RejectionReason:        r.RejectionReason(),
		HasUnansweredQuestions: r.HasUnansweredQuestions(),
		RequestedAt:            r.RequestedAt(),
		RespondedAt:            r.RespondedAt(),
		CompletedAt:            r.CompletedAt(),
		RejectedAt:             r.RejectedAt(),
		CreatedAt:              r.CreatedAt(),
		UpdatedAt:              r.UpdatedAt(),
	}
}

type questionEntry struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer,omitempty"`
}

func questionsToJSON(questions []Question) (string, error) {
	entries := make([]questionEntry, len(questions))
	for i, q := range questions {
		entries[i] = questionEntry{Question: q.Text(), Answer: q.Answer()}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseQuestions(data string) ([]Question, error) {
	var entries []questionEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	questions := make([]Question, len(entries))
	for i, e := range entries {
		questions[i] = Question{text: e.Question, answer: e.Answer}
	}
	return questions, nil
}

// MakeQuestionnaire converts a questionnaire entity to its domain model
func MakeQuestionnaire(e QuestionnaireEntity) (Questionnaire, error) {
	questions, err := parseQuestions(e.Questions)
	if err != nil {
		return Questionnaire{}, err
	}
	return NewQuestionnaireBuilder(e.RequestId, e.SenderId, e.ReceiverId, e.TenantId).
		SetId(e.ID).
		SetAnsweredQuestions(questions).
		SetStatus(e.Status).
		SetCreatedAt(e.CreatedAt).
		SetUpdatedAt(e.UpdatedAt).
		Build()
}

// ToQuestionnaireEntity converts a questionnaire model to its persistence entity
func ToQuestionnaireEntity(q Questionnaire) (QuestionnaireEntity, error) {
	questions, err := questionsToJSON(q.Questions())
	if err != nil {
		return QuestionnaireEntity{}, err
	}
	return QuestionnaireEntity{
		ID:         q.Id(),
		TenantId:   q.TenantId(),
		RequestId:  q.RequestId(),
		SenderId:   q.SenderId(),
		ReceiverId: q.ReceiverId(),
		Questions:  questions,
		Status:     q.Status(),
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	}, nil
}
