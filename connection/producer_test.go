package connection

import (
	"encoding/json"
	"testing"
	"time"

	connectionMsg "atlas-introductions/kafka/message/connection"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/google/uuid"
)

func TestRequestCreatedEventProvider(t *testing.T) {
	requestId := uint32(1)
	senderId := uint32(100)
	receiverId := uint32(200)
	requestedAt := time.Now()

	provider := RequestCreatedEventProvider(receiverId, requestId, senderId, receiverId, "hello", requestedAt)

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	msg := messages[0]
	expectedKey := producer.CreateKey(int(receiverId))
	if string(msg.Key) != string(expectedKey) {
		t.Errorf("Expected key %s, got %s", expectedKey, msg.Key)
	}

	var event connectionMsg.Event[connectionMsg.RequestCreatedEventBody]
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Type != connectionMsg.EventStatusTypeRequestCreated {
		t.Errorf("Expected type %s, got %s", connectionMsg.EventStatusTypeRequestCreated, event.Type)
	}
	if event.MemberId != receiverId {
		t.Errorf("Expected member %d, got %d", receiverId, event.MemberId)
	}
	if event.Body.RequestId != requestId || event.Body.SenderId != senderId {
		t.Error("Expected request body to carry the pairing ids")
	}
	if event.Body.Message != "hello" {
		t.Errorf("Expected message carried, got %s", event.Body.Message)
	}
}

func TestRequestApprovedEventProvider(t *testing.T) {
	provider := RequestApprovedEventProvider(100, 1, 100, 200, time.Now())

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	var event connectionMsg.Event[connectionMsg.RequestApprovedEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Type != connectionMsg.EventStatusTypeRequestApproved {
		t.Errorf("Expected type %s, got %s", connectionMsg.EventStatusTypeRequestApproved, event.Type)
	}
}

func TestCompatibilityRecordedEventProvider(t *testing.T) {
	provider := CompatibilityRecordedEventProvider(100, "MUSLIM", true, time.Now())

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	var event connectionMsg.Event[connectionMsg.CompatibilityRecordedEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Body.ReligiousBackground != "MUSLIM" {
		t.Errorf("Expected background MUSLIM, got %s", event.Body.ReligiousBackground)
	}
	if !event.Body.Complete {
		t.Error("Expected completion flag to be carried")
	}
}

func TestQuestionnaireSentEventProvider(t *testing.T) {
	questionnaire, err := NewQuestionnaireBuilder(1, 100, 200, uuid.New()).
		SetId(5).
		SetQuestions([]string{"first?", "second?"}).
		Build()
	if err != nil {
		t.Fatalf("Failed to build questionnaire: %v", err)
	}

	provider := QuestionnaireSentEventProvider(200, questionnaire)

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	expectedKey := producer.CreateKey(200)
	if string(messages[0].Key) != string(expectedKey) {
		t.Errorf("Expected key %s, got %s", expectedKey, messages[0].Key)
	}

	var event connectionMsg.Event[connectionMsg.QuestionnaireSentEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Body.QuestionnaireId != 5 {
		t.Errorf("Expected questionnaire id 5, got %d", event.Body.QuestionnaireId)
	}
	if event.Body.QuestionCount != 2 {
		t.Errorf("Expected question count 2, got %d", event.Body.QuestionCount)
	}
}

func TestQuestionnaireCompletedEventProvider(t *testing.T) {
	request, err := NewBuilder(100, 200, uuid.New()).SetId(1).Build()
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	approved, err := request.Approve()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	completed, err := approved.CompleteQuestionnaires()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	provider := QuestionnaireCompletedEventProvider(100, completed, CompletionViaCompatibility)

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	var event connectionMsg.Event[connectionMsg.QuestionnaireCompletedEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Body.Via != CompletionViaCompatibility {
		t.Errorf("Expected via %s, got %s", CompletionViaCompatibility, event.Body.Via)
	}
}

func TestConnectionRejectedEventProvider(t *testing.T) {
	request, err := NewBuilder(100, 200, uuid.New()).SetId(1).Build()
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	rejected, err := request.Reject("not a match")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	provider := ConnectionRejectedEventProvider(100, rejected)

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	var event connectionMsg.Event[connectionMsg.ConnectionRejectedEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Body.Reason != "not a match" {
		t.Errorf("Expected rejection reason carried, got %s", event.Body.Reason)
	}
}

func TestErrorEventProvider(t *testing.T) {
	provider := ErrorEventProvider(100, "RESPOND_FAILED", ErrorCodeForbidden, 7)

	messages, err := provider()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	var event connectionMsg.Event[connectionMsg.ErrorEventBody]
	if err := json.Unmarshal(messages[0].Value, &event); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if event.Type != connectionMsg.EventStatusTypeError {
		t.Errorf("Expected type %s, got %s", connectionMsg.EventStatusTypeError, event.Type)
	}
	if event.Body.ErrorCode != ErrorCodeForbidden {
		t.Errorf("Expected error code %s, got %s", ErrorCodeForbidden, event.Body.ErrorCode)
	}
	if event.Body.RequestId != 7 {
		t.Errorf("Expected request id 7, got %d", event.Body.RequestId)
	}
}
