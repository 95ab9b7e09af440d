package connection

// Error codes carried by LifecycleError and surfaced on error events and REST
// responses.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeInvalidState = "INVALID_STATE"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeValidation   = "VALIDATION"
)

// LifecycleError is a typed error for lifecycle rule violations
type LifecycleError struct {
	Code    string
	Message string
}

func (e LifecycleError) Error() string {
	return e.Message
}

var (
	ErrRequestNotFound       = LifecycleError{Code: ErrorCodeNotFound, Message: "connection request not found"}
	ErrQuestionnaireNotFound = LifecycleError{Code: ErrorCodeNotFound, Message: "questionnaire not found"}

	ErrNotReceiver              = LifecycleError{Code: ErrorCodeForbidden, Message: "only the receiver may respond to a request"}
	ErrNotParticipant           = LifecycleError{Code: ErrorCodeForbidden, Message: "member is not a participant of the pairing"}
	ErrNotQuestionnaireReceiver = LifecycleError{Code: ErrorCodeForbidden, Message: "only the questionnaire receiver may answer it"}

	ErrInvalidStage   = LifecycleError{Code: ErrorCodeInvalidState, Message: "action not allowed in the current stage"}
	ErrAlreadyDecided = LifecycleError{Code: ErrorCodeInvalidState, Message: "request has already been decided"}

	ErrPairingExists       = LifecycleError{Code: ErrorCodeConflict, Message: "an active pairing already exists between the members"}
	ErrQuestionnaireExists = LifecycleError{Code: ErrorCodeConflict, Message: "sender already has a questionnaire for this pairing"}
	ErrAlreadyAnswered     = LifecycleError{Code: ErrorCodeConflict, Message: "questionnaire has already been answered"}

	ErrQuestionCount  = LifecycleError{Code: ErrorCodeValidation, Message: "questionnaire must contain between 1 and 10 questions"}
	ErrEmptyQuestion  = LifecycleError{Code: ErrorCodeValidation, Message: "questions must not be blank"}
	ErrAnswerCount    = LifecycleError{Code: ErrorCodeValidation, Message: "answer count must match question count"}
	ErrEmptyAnswer    = LifecycleError{Code: ErrorCodeValidation, Message: "answers must not be blank"}
	ErrInvalidDecision = LifecycleError{Code: ErrorCodeValidation, Message: "decision must be APPROVE or REJECT"}
	ErrSelfPairing     = LifecycleError{Code: ErrorCodeValidation, Message: "sender and receiver must differ"}
	ErrUnknownBackground = LifecycleError{Code: ErrorCodeValidation, Message: "unrecognized religious background"}
)
