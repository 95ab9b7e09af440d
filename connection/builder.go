package connection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Builder constructs Request models, enforcing stage and timestamp
// consistency at Build time.
type Builder struct {
	id                     uint32
	senderId               uint32
	receiverId             uint32
	message                string
	stage                  Stage
	rejectionReason        *string
	hasUnansweredQuestions bool
	tenantId               uuid.UUID
	requestedAt            time.Time
	respondedAt            *time.Time
	completedAt            *time.Time
	rejectedAt             *time.Time
	createdAt              time.Time
	updatedAt              time.Time
}

// NewBuilder creates a builder for a new pending request
func NewBuilder(senderId uint32, receiverId uint32, tenantId uuid.UUID) *Builder {
	now := time.Now()
	return &Builder{
		senderId:    senderId,
		receiverId:  receiverId,
		stage:       StagePending,
		tenantId:    tenantId,
		requestedAt: now,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (b *Builder) SetId(id uint32) *Builder {
	b.id = id
	return b
}

func (b *Builder) SetMessage(message string) *Builder {
	b.message = message
	return b
}

func (b *Builder) SetStage(stage Stage) *Builder {
	b.stage = stage
	return b
}

func (b *Builder) SetRejectionReason(reason *string) *Builder {
	b.rejectionReason = reason
	return b
}

func (b *Builder) SetHasUnansweredQuestions(pending bool) *Builder {
	b.hasUnansweredQuestions = pending
	return b
}

func (b *Builder) SetRequestedAt(t time.Time) *Builder {
	b.requestedAt = t
	return b
}

func (b *Builder) SetRespondedAt(t *time.Time) *Builder {
	b.respondedAt = t
	return b
}

func (b *Builder) SetCompletedAt(t *time.Time) *Builder {
	b.completedAt = t
	return b
}

func (b *Builder) SetRejectedAt(t *time.Time) *Builder {
	b.rejectedAt = t
	return b
}

func (b *Builder) SetCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

func (b *Builder) SetUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the assembled state and returns the immutable model
func (b *Builder) Build() (Request, error) {
	if b.senderId == 0 {
		return Request{}, errors.New("sender id required")
	}
	if b.receiverId == 0 {
		return Request{}, errors.New("receiver id required")
	}
	if b.senderId == b.receiverId {
		return Request{}, errors.New("sender and receiver must differ")
	}
	if b.tenantId == uuid.Nil {
		return Request{}, errors.New("tenant id required")
	}
	if err := b.validateStageConsistency(); err != nil {
		return Request{}, err
	}

	return Request{
		id:                     b.id,
		senderId:               b.senderId,
		receiverId:             b.receiverId,
		message:                b.message,
		stage:                  b.stage,
		rejectionReason:        b.rejectionReason,
		hasUnansweredQuestions: b.hasUnansweredQuestions,
		tenantId:               b.tenantId,
		requestedAt:            b.requestedAt,
		respondedAt:            b.respondedAt,
		completedAt:            b.completedAt,
		rejectedAt:             b.rejectedAt,
		createdAt:              b.createdAt,
		updatedAt:              b.updatedAt,
	}, nil
}

func (b *Builder) validateStageConsistency() error {
	switch b.stage {
	case StagePending:
		if b.respondedAt != nil {
			return errors.New("pending request cannot carry a response timestamp")
		}
		if b.completedAt != nil || b.rejectedAt != nil {
			return errors.New("pending request cannot carry completion or rejection timestamps")
		}
		if b.rejectionReason != nil {
			return errors.New("pending request cannot carry a rejection reason")
		}
		if b.hasUnansweredQuestions {
			return errors.New("pending request cannot have outstanding questionnaires")
		}
	case StageAccepted, StageQuestionnaireSent:
		if b.respondedAt == nil {
			return errors.New("approved request requires a response timestamp")
		}
		if b.completedAt != nil || b.rejectedAt != nil {
			return errors.New("approved request cannot carry completion or rejection timestamps")
		}
		if b.rejectionReason != nil {
			return errors.New("approved request cannot carry a rejection reason")
		}
	case StageQuestionnaireCompleted, StageConnected:
		if b.respondedAt == nil {
			return errors.New("completed pairing requires a response timestamp")
		}
		if b.completedAt == nil {
			return errors.New("completed pairing requires a completion timestamp")
		}
		if b.rejectedAt != nil || b.rejectionReason != nil {
			return errors.New("completed pairing cannot carry rejection state")
		}
	case StageRejected:
		if b.rejectedAt == nil {
			return errors.New("rejected pairing requires a rejection timestamp")
		}
		if b.hasUnansweredQuestions {
			return errors.New("rejected pairing cannot have outstanding questionnaires")
		}
	default:
		return errors.New("unknown stage")
	}
	return nil
}
