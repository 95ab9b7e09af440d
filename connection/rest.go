package connection

import (
	"strconv"
	"time"
)

// RestRequest represents the REST API model for connection request responses
type RestRequest struct {
	ID                     uint32     `json:"id"`
	SenderId               uint32     `json:"senderId"`
	ReceiverId             uint32     `json:"receiverId"`
	Message                string     `json:"message,omitempty"`
	RequestStatus          string     `json:"requestStatus"`
	ConnectionStage        string     `json:"connectionStage"`
	RejectionReason        *string    `json:"rejectionReason,omitempty"`
	HasUnansweredQuestions bool       `json:"hasUnansweredQuestions"`
	RequestedAt            time.Time  `json:"requestedAt"`
	RespondedAt            *time.Time `json:"respondedAt,omitempty"`
	CompletedAt            *time.Time `json:"completedAt,omitempty"`
	RejectedAt             *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// GetType returns the JSON:API resource type for connection requests
func (rr RestRequest) GetType() string {
	return "request"
}

// GetID returns the JSON:API resource ID for connection requests
func (rr RestRequest) GetID() string {
	return strconv.Itoa(int(rr.ID))
}

// RestQuestion represents a single prompt with its optional answer
type RestQuestion struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer,omitempty"`
}

// RestQuestionnaire represents the REST API model for questionnaire responses
type RestQuestionnaire struct {
	ID         uint32         `json:"id"`
	RequestId  uint32         `json:"requestId"`
	SenderId   uint32         `json:"senderId"`
	ReceiverId uint32         `json:"receiverId"`
	Status     string         `json:"status"`
	Questions  []RestQuestion `json:"questions"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// GetType returns the JSON:API resource type for questionnaires
func (rq RestQuestionnaire) GetType() string {
	return "questionnaire"
}

// GetID returns the JSON:API resource ID for questionnaires
func (rq RestQuestionnaire) GetID() string {
	return strconv.Itoa(int(rq.ID))
}

// RestMessagingEligibility represents the messaging gate evaluation for a pairing
type RestMessagingEligibility struct {
	RequestId  uint32 `json:"requestId"`
	CanMessage bool   `json:"canMessage"`
}

// GetType returns the JSON:API resource type for messaging eligibility
func (rm RestMessagingEligibility) GetType() string {
	return "messaging-eligibility"
}

// GetID returns the JSON:API resource ID for messaging eligibility
func (rm RestMessagingEligibility) GetID() string {
	return strconv.Itoa(int(rm.RequestId))
}

// TransformRequest converts a domain Request model to REST representation
func TransformRequest(r Request) (RestRequest, error) {
	return RestRequest{
		ID:                     r.Id(),
		SenderId:               r.SenderId(),
		ReceiverId:             r.ReceiverId(),
		Message:                r.Message(),
		RequestStatus:          r.Stage().RequestStatus(),
		ConnectionStage:        r.Stage().ConnectionStage(),
		RejectionReason:        r.RejectionReason(),
		HasUnansweredQuestions: r.HasUnansweredQuestions(),
		RequestedAt:            r.RequestedAt(),
		RespondedAt:            r.RespondedAt(),
		CompletedAt:            r.CompletedAt(),
		RejectedAt:             r.RejectedAt(),
		CreatedAt:              r.CreatedAt(),
		UpdatedAt:              r.UpdatedAt(),
	}, nil
}

// TransformRequests converts a slice of domain Request models to REST representations
func TransformRequests(requests []Request) ([]RestRequest, error) {
	out := make([]RestRequest, 0, len(requests))
	for _, r := range requests {
		rr, err := TransformRequest(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}

// TransformQuestionnaire converts a domain Questionnaire model to REST representation
func TransformQuestionnaire(q Questionnaire) (RestQuestionnaire, error) {
	questions := make([]RestQuestion, 0, len(q.Questions()))
	for _, question := range q.Questions() {
		questions = append(questions, RestQuestion{
			Question: question.Text(),
			Answer:   question.Answer(),
		})
	}
	return RestQuestionnaire{
		ID:         q.Id(),
		RequestId:  q.RequestId(),
		SenderId:   q.SenderId(),
		ReceiverId: q.ReceiverId(),
		Status:     q.Status().String(),
		Questions:  questions,
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	}, nil
}

// TransformQuestionnaires converts a slice of domain Questionnaire models to REST representations
func TransformQuestionnaires(questionnaires []Questionnaire) ([]RestQuestionnaire, error) {
	out := make([]RestQuestionnaire, 0, len(questionnaires))
	for _, q := range questionnaires {
		rq, err := TransformQuestionnaire(q)
		if err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, nil
}

// CreateRequestInput is the request body for creating a connection request
type CreateRequestInput struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			SenderId   uint32 `json:"senderId"`
			ReceiverId uint32 `json:"receiverId"`
			Message    string `json:"message"`
		} `json:"attributes"`
	} `json:"data"`
}

// UpdateRequestInput is the request body for advancing a connection request.
// Status and stage fields are advisory hints; the lifecycle engine decides
// which transition applies.
type UpdateRequestInput struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			ActorId         uint32 `json:"actorId"`
			RequestStatus   string `json:"requestStatus,omitempty"`
			ConnectionStage string `json:"connectionStage,omitempty"`
			RejectionReason string `json:"rejectionReason,omitempty"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateQuestionnaireInput is the request body for sending a custom questionnaire
type CreateQuestionnaireInput struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			SenderId  uint32   `json:"senderId"`
			Questions []string `json:"questions"`
		} `json:"attributes"`
	} `json:"data"`
}

// AnswerQuestionnaireInput is the request body for answering a questionnaire
type AnswerQuestionnaireInput struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			ActorId         uint32   `json:"actorId"`
			QuestionnaireId uint32   `json:"questionnaireId"`
			Answers         []string `json:"answers"`
		} `json:"attributes"`
	} `json:"data"`
}

// CompatibilityInput is the request body for submitting compatibility answers
type CompatibilityInput struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			ReligiousBackground         string `json:"religiousBackground"`
			MarriageUnderstanding       string `json:"marriageUnderstanding"`
			LifeGoals                   string `json:"lifeGoals"`
			PartnerTraits               string `json:"partnerTraits"`
			HobbiesInterests            string `json:"hobbiesInterests"`
			ReligiousPracticeImportance string `json:"religiousPracticeImportance,omitempty"`
			SpiritualGrowth             string `json:"spiritualGrowth,omitempty"`
			SectPreference              string `json:"sectPreference,omitempty"`
			ChildrenPreference          string `json:"childrenPreference,omitempty"`
			ConflictResolution          string `json:"conflictResolution,omitempty"`
		} `json:"attributes"`
	} `json:"data"`
}
