package connection

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAdministratorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.New(
			logrus.StandardLogger(),
			logger.Config{
				SlowThreshold: time.Second,
				LogLevel:      logger.Silent,
				Colorful:      false,
			},
		),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := Migration(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestCreateRequest(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	entity, err := CreateRequest(db, log)(100, 200, "hello", tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if entity.ID == 0 {
		t.Error("Expected entity id to be assigned")
	}
	if entity.Stage != StagePending {
		t.Errorf("Expected stage pending, got %s", entity.Stage)
	}
	if entity.SenderId != 100 || entity.ReceiverId != 200 {
		t.Error("Expected participant ids to be persisted")
	}
	if entity.Message != "hello" {
		t.Errorf("Expected message persisted, got %s", entity.Message)
	}
	if entity.TenantId != tenantId {
		t.Error("Expected tenant id to be persisted")
	}
}

func TestUpdateRequest(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	entity, err := CreateRequest(db, log)(100, 200, "hello", tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	request, err := Make(entity)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	approved, err := request.Approve()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := UpdateRequest(db, log)(approved)(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, err := GetRequestByIdProvider(db, log)(entity.ID, tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stored.Stage() != StageAccepted {
		t.Errorf("Expected persisted stage accepted, got %s", stored.Stage())
	}
	if stored.RespondedAt() == nil {
		t.Error("Expected response timestamp to be persisted")
	}
}

func TestCreateQuestionnaire(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	questionnaire, err := NewQuestionnaireBuilder(1, 100, 200, tenantId).
		SetQuestions([]string{"What are your life goals?"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entity, err := CreateQuestionnaire(db, log)(questionnaire)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if entity.ID == 0 {
		t.Error("Expected entity id to be assigned")
	}
	if entity.Status != QuestionnaireStatusPending {
		t.Errorf("Expected pending status, got %s", entity.Status)
	}
}

func TestCreateQuestionnaire_Duplicate(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	first, err := NewQuestionnaireBuilder(1, 100, 200, tenantId).
		SetQuestions([]string{"first question"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := CreateQuestionnaire(db, log)(first)(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	duplicate, err := NewQuestionnaireBuilder(1, 100, 200, tenantId).
		SetQuestions([]string{"second attempt"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := CreateQuestionnaire(db, log)(duplicate)(); !errors.Is(err, ErrQuestionnaireExists) {
		t.Errorf("Expected ErrQuestionnaireExists, got %v", err)
	}

	// The other participant may still send their own questionnaire
	other, err := NewQuestionnaireBuilder(1, 200, 100, tenantId).
		SetQuestions([]string{"my own question"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := CreateQuestionnaire(db, log)(other)(); err != nil {
		t.Errorf("Expected the other participant's questionnaire to be accepted, got %v", err)
	}

	// The same sender may send under a different request
	separate, err := NewQuestionnaireBuilder(2, 100, 200, tenantId).
		SetQuestions([]string{"different pairing"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := CreateQuestionnaire(db, log)(separate)(); err != nil {
		t.Errorf("Expected questionnaire under another request to be accepted, got %v", err)
	}
}

func TestUpdateQuestionnaire(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	questionnaire, err := NewQuestionnaireBuilder(1, 100, 200, tenantId).
		SetQuestions([]string{"What matters most to you?"}).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entity, err := CreateQuestionnaire(db, log)(questionnaire)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, err := MakeQuestionnaire(entity)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	answered, err := stored.Answer([]string{"honesty"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := UpdateQuestionnaire(db, log)(answered)(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fresh, err := GetQuestionnaireByIdProvider(db, log)(entity.ID, tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !fresh.IsAnswered() {
		t.Error("Expected persisted questionnaire to be answered")
	}
}

func TestGetRequestByIdProvider_NotFound(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()

	if _, err := GetRequestByIdProvider(db, log)(99, uuid.New())(); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("Expected ErrRequestNotFound, got %v", err)
	}
}

func TestGetQuestionnaireByIdProvider_NotFound(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()

	if _, err := GetQuestionnaireByIdProvider(db, log)(99, uuid.New())(); !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Errorf("Expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestGetActivePairingProvider(t *testing.T) {
	db := setupAdministratorTestDB(t)
	log := logrus.New()
	tenantId := uuid.New()

	entity, err := CreateRequest(db, log)(100, 200, "", tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Either direction finds the pairing
	pairing, err := GetActivePairingProvider(db, log)(100, 200, tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pairing == nil {
		t.Fatal("Expected active pairing to be found")
	}
	reversed, err := GetActivePairingProvider(db, log)(200, 100, tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reversed == nil {
		t.Fatal("Expected active pairing to be found in reverse direction")
	}

	// Other tenants do not see the pairing
	foreign, err := GetActivePairingProvider(db, log)(100, 200, uuid.New())()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if foreign != nil {
		t.Error("Expected no pairing for a different tenant")
	}

	// Terminal pairings are not active
	request, err := Make(entity)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rejected, err := request.Reject("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := UpdateRequest(db, log)(rejected)(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	closed, err := GetActivePairingProvider(db, log)(100, 200, tenantId)()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if closed != nil {
		t.Error("Expected rejected pairing to not count as active")
	}
}
