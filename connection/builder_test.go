package connection

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuilder_Defaults(t *testing.T) {
	tenantId := uuid.New()
	request, err := NewBuilder(100, 200, tenantId).Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if request.Stage() != StagePending {
		t.Errorf("Expected new request to be pending, got %s", request.Stage())
	}
	if request.SenderId() != 100 || request.ReceiverId() != 200 {
		t.Error("Expected participant ids to be carried over")
	}
	if request.TenantId() != tenantId {
		t.Error("Expected tenant id to be carried over")
	}
	if request.RequestedAt().IsZero() {
		t.Error("Expected requested timestamp to be set")
	}
	if request.HasUnansweredQuestions() {
		t.Error("Expected new request to carry no questionnaire flag")
	}
}

func TestBuilder_Validation(t *testing.T) {
	tenantId := uuid.New()
	now := time.Now()
	reason := "not a match"

	tests := []struct {
		name    string
		builder *Builder
	}{
		{"missing sender", NewBuilder(0, 200, tenantId)},
		{"missing receiver", NewBuilder(100, 0, tenantId)},
		{"self pairing", NewBuilder(100, 100, tenantId)},
		{"missing tenant", NewBuilder(100, 200, uuid.Nil)},
		{"pending with response timestamp", NewBuilder(100, 200, tenantId).SetRespondedAt(&now)},
		{"pending with rejection reason", NewBuilder(100, 200, tenantId).SetRejectionReason(&reason)},
		{"pending with questionnaire flag", NewBuilder(100, 200, tenantId).SetHasUnansweredQuestions(true)},
		{"accepted without response timestamp", NewBuilder(100, 200, tenantId).SetStage(StageAccepted)},
		{"accepted with completion timestamp", NewBuilder(100, 200, tenantId).SetStage(StageAccepted).SetRespondedAt(&now).SetCompletedAt(&now)},
		{"connected without completion timestamp", NewBuilder(100, 200, tenantId).SetStage(StageConnected).SetRespondedAt(&now)},
		{"completed with rejection state", NewBuilder(100, 200, tenantId).SetStage(StageQuestionnaireCompleted).SetRespondedAt(&now).SetCompletedAt(&now).SetRejectedAt(&now)},
		{"rejected without rejection timestamp", NewBuilder(100, 200, tenantId).SetStage(StageRejected)},
		{"rejected with questionnaire flag", NewBuilder(100, 200, tenantId).SetStage(StageRejected).SetRejectedAt(&now).SetHasUnansweredQuestions(true)},
		{"unknown stage", NewBuilder(100, 200, tenantId).SetStage(Stage(99))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.builder.Build(); err == nil {
				t.Error("Expected build to fail")
			}
		})
	}
}

func TestBuilder_ConsistentStages(t *testing.T) {
	tenantId := uuid.New()
	now := time.Now()
	reason := "member account deleted"

	tests := []struct {
		name    string
		builder *Builder
	}{
		{"pending", NewBuilder(100, 200, tenantId)},
		{"accepted", NewBuilder(100, 200, tenantId).SetStage(StageAccepted).SetRespondedAt(&now)},
		{"questionnaire sent", NewBuilder(100, 200, tenantId).SetStage(StageQuestionnaireSent).SetRespondedAt(&now).SetHasUnansweredQuestions(true)},
		{"questionnaire completed", NewBuilder(100, 200, tenantId).SetStage(StageQuestionnaireCompleted).SetRespondedAt(&now).SetCompletedAt(&now)},
		{"connected", NewBuilder(100, 200, tenantId).SetStage(StageConnected).SetRespondedAt(&now).SetCompletedAt(&now)},
		{"rejected with reason", NewBuilder(100, 200, tenantId).SetStage(StageRejected).SetRespondedAt(&now).SetRejectedAt(&now).SetRejectionReason(&reason)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.builder.Build(); err != nil {
				t.Errorf("Expected build to succeed, got %v", err)
			}
		})
	}
}

func TestBuilder_EntityRoundTrip(t *testing.T) {
	tenantId := uuid.New()
	request, err := NewBuilder(100, 200, tenantId).
		SetId(7).
		SetMessage("introduction message").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	approved, err := request.Approve()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	restored, err := Make(ToEntity(approved))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if restored.Id() != approved.Id() {
		t.Errorf("Expected id %d, got %d", approved.Id(), restored.Id())
	}
	if restored.Stage() != StageAccepted {
		t.Errorf("Expected stage accepted, got %s", restored.Stage())
	}
	if restored.Message() != "introduction message" {
		t.Errorf("Expected message carried over, got %s", restored.Message())
	}
	if restored.RespondedAt() == nil {
		t.Error("Expected response timestamp carried over")
	}
}
