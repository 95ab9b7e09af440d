package member

const (
	EnvEventTopicStatus    = "EVENT_TOPIC_MEMBER_STATUS"
	StatusEventTypeDeleted = "DELETED"
)

// StatusEvent is the envelope for member status events published by the
// member service.
type StatusEvent[E any] struct {
	MemberId uint32 `json:"memberId"`
	Type     string `json:"type"`
	Body     E      `json:"body"`
}

type DeletedStatusEventBody struct {
}
