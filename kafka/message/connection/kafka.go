package connection

import "time"

const (
	EnvCommandTopic     = "COMMAND_TOPIC_CONNECTION"
	EnvEventStatusTopic = "EVENT_TOPIC_CONNECTION_STATUS"

	CommandRequest              = "REQUEST"
	CommandRespond              = "RESPOND"
	CommandSkipCompatibility    = "SKIP_COMPATIBILITY"
	CommandSubmitCompatibility  = "SUBMIT_COMPATIBILITY"
	CommandSendQuestionnaire    = "SEND_QUESTIONNAIRE"
	CommandAnswerQuestionnaire  = "ANSWER_QUESTIONNAIRE"
	CommandReject               = "REJECT"
	CommandRecheckCompletion    = "RECHECK_COMPLETION"

	RespondDecisionApprove = "APPROVE"
	RespondDecisionReject  = "REJECT"

	EventStatusTypeRequestCreated         = "REQUEST_CREATED"
	EventStatusTypeRequestApproved        = "REQUEST_APPROVED"
	EventStatusTypeCompatibilityRecorded  = "COMPATIBILITY_RECORDED"
	EventStatusTypeQuestionnaireSent      = "QUESTIONNAIRE_SENT"
	EventStatusTypeQuestionnaireAnswered  = "QUESTIONNAIRE_ANSWERED"
	EventStatusTypeQuestionnaireCompleted = "QUESTIONNAIRE_COMPLETED"
	EventStatusTypeConnectionEstablished  = "CONNECTION_ESTABLISHED"
	EventStatusTypeConnectionRejected     = "CONNECTION_REJECTED"
	EventStatusTypeError                  = "ERROR"
)

// Command is the envelope for connection commands. ActorId identifies the
// member performing the action so the handler can enforce role checks.
type Command[E any] struct {
	ActorId uint32 `json:"actorId"`
	Type    string `json:"type"`
	Body    E      `json:"body"`
}

type RequestCommandBody struct {
	ReceiverId uint32 `json:"receiverId"`
	Message    string `json:"message"`
}

type RespondCommandBody struct {
	RequestId uint32 `json:"requestId"`
	Decision  string `json:"decision"`
}

type SkipCompatibilityCommandBody struct {
	RequestId uint32 `json:"requestId"`
}

type SubmitCompatibilityCommandBody struct {
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
}

type SendQuestionnaireCommandBody struct {
	RequestId uint32   `json:"requestId"`
	Questions []string `json:"questions"`
}

type AnswerQuestionnaireCommandBody struct {
	QuestionnaireId uint32   `json:"questionnaireId"`
	Answers         []string `json:"answers"`
}

type RejectCommandBody struct {
	RequestId uint32 `json:"requestId"`
	Reason    string `json:"reason"`
}

type RecheckCompletionCommandBody struct {
	RequestId uint32 `json:"requestId"`
}

// Event is the envelope for connection status events. MemberId identifies the
// member the notification concerns.
type Event[E any] struct {
	MemberId uint32 `json:"memberId"`
	Type     string `json:"type"`
	Body     E      `json:"body"`
}

type RequestCreatedEventBody struct {
	RequestId   uint32    `json:"requestId"`
	SenderId    uint32    `json:"senderId"`
	ReceiverId  uint32    `json:"receiverId"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requestedAt"`
}

type RequestApprovedEventBody struct {
	RequestId   uint32    `json:"requestId"`
	SenderId    uint32    `json:"senderId"`
	ReceiverId  uint32    `json:"receiverId"`
	RespondedAt time.Time `json:"respondedAt"`
}

type CompatibilityRecordedEventBody struct {
	ReligiousBackground string    `json:"religiousBackground"`
	Complete            bool      `json:"complete"`
	RecordedAt          time.Time `json:"recordedAt"`
}

type QuestionnaireSentEventBody struct {
	RequestId       uint32    `json:"requestId"`
	QuestionnaireId uint32    `json:"questionnaireId"`
	SenderId        uint32    `json:"senderId"`
	ReceiverId      uint32    `json:"receiverId"`
	QuestionCount   int       `json:"questionCount"`
	SentAt          time.Time `json:"sentAt"`
}

type QuestionnaireAnsweredEventBody struct {
	RequestId       uint32    `json:"requestId"`
	QuestionnaireId uint32    `json:"questionnaireId"`
	ReceiverId      uint32    `json:"receiverId"`
	AnsweredAt      time.Time `json:"answeredAt"`
}

type QuestionnaireCompletedEventBody struct {
	RequestId   uint32    `json:"requestId"`
	SenderId    uint32    `json:"senderId"`
	ReceiverId  uint32    `json:"receiverId"`
	Via         string    `json:"via"`
	CompletedAt time.Time `json:"completedAt"`
}

type ConnectionEstablishedEventBody struct {
	RequestId   uint32    `json:"requestId"`
	SenderId    uint32    `json:"senderId"`
	ReceiverId  uint32    `json:"receiverId"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type ConnectionRejectedEventBody struct {
	RequestId  uint32    `json:"requestId"`
	SenderId   uint32    `json:"senderId"`
	ReceiverId uint32    `json:"receiverId"`
	Reason     string    `json:"reason,omitempty"`
	RejectedAt time.Time `json:"rejectedAt"`
}

type ErrorEventBody struct {
	Type      string `json:"type"`
	ErrorCode string `json:"errorCode"`
	RequestId uint32 `json:"requestId,omitempty"`
}
