package connection

// Stage represents the lifecycle stage of a connection request. A pairing is a
// single sender to receiver request plus all questionnaire activity under it;
// the stage is the one authoritative state driving which actions are legal.
type Stage uint8

const (
	// StagePending represents a request awaiting the receiver's decision
	StagePending Stage = iota
	// StageAccepted represents a request the receiver has approved
	StageAccepted
	// StageQuestionnaireSent represents a pairing with an outstanding custom questionnaire
	StageQuestionnaireSent
	// StageQuestionnaireCompleted represents a pairing whose questionnaire round is mutually complete
	StageQuestionnaireCompleted
	// StageConnected represents a pairing unlocked for messaging without questionnaire completion
	StageConnected
	// StageRejected represents a terminally rejected pairing
	StageRejected
)

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageAccepted:
		return "accepted"
	case StageQuestionnaireSent:
		return "questionnaire_sent"
	case StageQuestionnaireCompleted:
		return "questionnaire_completed"
	case StageConnected:
		return "connected"
	case StageRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RequestStatus returns the receiver-decision view of the stage
func (s Stage) RequestStatus() string {
	switch s {
	case StagePending:
		return "pending"
	case StageRejected:
		return "rejected"
	case StageAccepted, StageQuestionnaireSent, StageQuestionnaireCompleted, StageConnected:
		return "approved"
	default:
		return "unknown"
	}
}

// ConnectionStage returns the progression view of the stage
func (s Stage) ConnectionStage() string {
	if s == StagePending {
		return "none"
	}
	return s.String()
}

// IsTerminal returns true if no further transitions are accepted
func (s Stage) IsTerminal() bool {
	return s == StageRejected
}

// AtOrPastAcceptance returns true if the receiver has approved and the pairing is live
func (s Stage) AtOrPastAcceptance() bool {
	switch s {
	case StageAccepted, StageQuestionnaireSent, StageQuestionnaireCompleted, StageConnected:
		return true
	default:
		return false
	}
}

// AllowsMessaging is the single gate the messaging channel consults
func (s Stage) AllowsMessaging() bool {
	return s == StageQuestionnaireCompleted || s == StageConnected
}

// CanTransitionTo returns true if the stage can transition to the target stage
func (s Stage) CanTransitionTo(target Stage) bool {
	switch s {
	case StagePending:
		return target == StageAccepted || target == StageRejected
	case StageAccepted:
		return target == StageQuestionnaireSent || target == StageQuestionnaireCompleted ||
			target == StageConnected || target == StageRejected
	case StageQuestionnaireSent:
		return target == StageQuestionnaireCompleted || target == StageRejected
	case StageQuestionnaireCompleted:
		return target == StageRejected
	case StageConnected:
		return target == StageRejected
	case StageRejected:
		return false
	default:
		return false
	}
}

// ValidTransitions returns all stages reachable from the current stage
func (s Stage) ValidTransitions() []Stage {
	switch s {
	case StagePending:
		return []Stage{StageAccepted, StageRejected}
	case StageAccepted:
		return []Stage{StageQuestionnaireSent, StageQuestionnaireCompleted, StageConnected, StageRejected}
	case StageQuestionnaireSent:
		return []Stage{StageQuestionnaireCompleted, StageRejected}
	case StageQuestionnaireCompleted:
		return []Stage{StageRejected}
	case StageConnected:
		return []Stage{StageRejected}
	default:
		return []Stage{}
	}
}

// QuestionnaireStatus represents the answer state of a custom questionnaire
type QuestionnaireStatus uint8

const (
	// QuestionnaireStatusPending represents a questionnaire awaiting answers
	QuestionnaireStatusPending QuestionnaireStatus = iota
	// QuestionnaireStatusAnswered represents a questionnaire answered by its receiver
	QuestionnaireStatusAnswered
)

// String returns the string representation of the questionnaire status
func (s QuestionnaireStatus) String() string {
	switch s {
	case QuestionnaireStatusPending:
		return "pending"
	case QuestionnaireStatusAnswered:
		return "answered"
	default:
		return "unknown"
	}
}
