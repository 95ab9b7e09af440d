package connection

import (
	"errors"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func activeStages() []Stage {
	return []Stage{StagePending, StageAccepted, StageQuestionnaireSent, StageQuestionnaireCompleted, StageConnected}
}

// GetRequestByIdProvider retrieves a connection request by ID
func GetRequestByIdProvider(db *gorm.DB, log logrus.FieldLogger) func(requestId uint32, tenantId uuid.UUID) model.Provider[Request] {
	return func(requestId uint32, tenantId uuid.UUID) model.Provider[Request] {
		return func() (Request, error) {
			log.WithFields(logrus.Fields{
				"requestId": requestId,
				"tenantId":  tenantId,
			}).Debug("Retrieving connection request by ID")

			var entity Entity
			err := db.Where("id = ? AND tenant_id = ?", requestId, tenantId).First(&entity).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return Request{}, ErrRequestNotFound
				}
				return Request{}, err
			}

			return Make(entity)
		}
	}
}

// GetActivePairingProvider retrieves a non-terminal pairing between two
// members in either direction, or nil when none exists
func GetActivePairingProvider(db *gorm.DB, log logrus.FieldLogger) func(memberId1, memberId2 uint32, tenantId uuid.UUID) model.Provider[*Request] {
	return func(memberId1, memberId2 uint32, tenantId uuid.UUID) model.Provider[*Request] {
		return func() (*Request, error) {
			log.WithFields(logrus.Fields{
				"memberId1": memberId1,
				"memberId2": memberId2,
				"tenantId":  tenantId,
			}).Debug("Retrieving active pairing between members")

			var entity Entity
			err := db.Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND tenant_id = ? AND stage IN (?)",
				memberId1, memberId2, memberId2, memberId1, tenantId, activeStages()).
				First(&entity).Error

			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil
				}
				return nil, err
			}

			request, err := Make(entity)
			if err != nil {
				return nil, err
			}

			return &request, nil
		}
	}
}

// GetRequestsByParticipantProvider retrieves all requests a member participates in
func GetRequestsByParticipantProvider(db *gorm.DB, log logrus.FieldLogger) func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
	return func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
		return func() ([]Request, error) {
			log.WithFields(logrus.Fields{
				"memberId": memberId,
				"tenantId": tenantId,
			}).Debug("Retrieving connection requests for member")

			var entities []Entity
			err := db.Where("(sender_id = ? OR receiver_id = ?) AND tenant_id = ?",
				memberId, memberId, tenantId).
				Order("created_at DESC").
				Find(&entities).Error

			if err != nil {
				return nil, err
			}

			requests := make([]Request, 0, len(entities))
			for _, entity := range entities {
				request, err := Make(entity)
				if err != nil {
					return nil, err
				}
				requests = append(requests, request)
			}

			return requests, nil
		}
	}
}

// GetActiveRequestsByParticipantProvider retrieves the non-terminal requests a
// member participates in
func GetActiveRequestsByParticipantProvider(db *gorm.DB, log logrus.FieldLogger) func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
	return func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
		return func() ([]Request, error) {
			log.WithFields(logrus.Fields{
				"memberId": memberId,
				"tenantId": tenantId,
			}).Debug("Retrieving active connection requests for member")

			var entities []Entity
			err := db.Where("(sender_id = ? OR receiver_id = ?) AND tenant_id = ? AND stage IN (?)",
				memberId, memberId, tenantId, activeStages()).
				Order("created_at DESC").
				Find(&entities).Error

			if err != nil {
				return nil, err
			}

			requests := make([]Request, 0, len(entities))
			for _, entity := range entities {
				request, err := Make(entity)
				if err != nil {
					return nil, err
				}
				requests = append(requests, request)
			}

			return requests, nil
		}
	}
}

// GetAcceptedRequestsByParticipantProvider retrieves the accepted stage
// requests a member participates in, the ones compatibility completion can
// still advance
func GetAcceptedRequestsByParticipantProvider(db *gorm.DB, log logrus.FieldLogger) func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
	return func(memberId uint32, tenantId uuid.UUID) model.Provider[[]Request] {
		return func() ([]Request, error) {
			log.WithFields(logrus.Fields{
				"memberId": memberId,
				"tenantId": tenantId,
			}).Debug("Retrieving accepted connection requests for member")

			var entities []Entity
			err := db.Where("(sender_id = ? OR receiver_id = ?) AND tenant_id = ? AND stage = ?",
				memberId, memberId, tenantId, StageAccepted).
				Find(&entities).Error

			if err != nil {
				return nil, err
			}

			requests := make([]Request, 0, len(entities))
			for _, entity := range entities {
				request, err := Make(entity)
				if err != nil {
					return nil, err
				}
				requests = append(requests, request)
			}

			return requests, nil
		}
	}
}

// GetAcceptedRequestsProvider retrieves all accepted stage requests for a tenant
func GetAcceptedRequestsProvider(db *gorm.DB, log logrus.FieldLogger) func(tenantId uuid.UUID) model.Provider[[]Request] {
	return func(tenantId uuid.UUID) model.Provider[[]Request] {
		return func() ([]Request, error) {
			log.WithField("tenantId", tenantId).Debug("Retrieving accepted connection requests")

			var entities []Entity
			err := db.Where("tenant_id = ? AND stage = ?", tenantId, StageAccepted).
				Find(&entities).Error

			if err != nil {
				return nil, err
			}

			requests := make([]Request, 0, len(entities))
			for _, entity := range entities {
				request, err := Make(entity)
				if err != nil {
					return nil, err
				}
				requests = append(requests, request)
			}

			return requests, nil
		}
	}
}

// GetQuestionnaireByIdProvider retrieves a questionnaire by ID
func GetQuestionnaireByIdProvider(db *gorm.DB, log logrus.FieldLogger) func(questionnaireId uint32, tenantId uuid.UUID) model.Provider[Questionnaire] {
	return func(questionnaireId uint32, tenantId uuid.UUID) model.Provider[Questionnaire] {
		return func() (Questionnaire, error) {
			log.WithFields(logrus.Fields{
				"questionnaireId": questionnaireId,
				"tenantId":        tenantId,
			}).Debug("Retrieving questionnaire by ID")

			var entity QuestionnaireEntity
			err := db.Where("id = ? AND tenant_id = ?", questionnaireId, tenantId).First(&entity).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return Questionnaire{}, ErrQuestionnaireNotFound
				}
				return Questionnaire{}, err
			}

			return MakeQuestionnaire(entity)
		}
	}
}

// GetQuestionnairesByRequestProvider retrieves all questionnaires under a request
func GetQuestionnairesByRequestProvider(db *gorm.DB, log logrus.FieldLogger) func(requestId uint32, tenantId uuid.UUID) model.Provider[[]Questionnaire] {
	return func(requestId uint32, tenantId uuid.UUID) model.Provider[[]Questionnaire] {
		return func() ([]Questionnaire, error) {
			log.WithFields(logrus.Fields{
				"requestId": requestId,
				"tenantId":  tenantId,
			}).Debug("Retrieving questionnaires for request")

			var entities []QuestionnaireEntity
			err := db.Where("request_id = ? AND tenant_id = ?", requestId, tenantId).
				Order("created_at ASC").
				Find(&entities).Error

			if err != nil {
				return nil, err
			}

			questionnaires := make([]Questionnaire, 0, len(entities))
			for _, entity := range entities {
				questionnaire, err := MakeQuestionnaire(entity)
				if err != nil {
					return nil, err
				}
				questionnaires = append(questionnaires, questionnaire)
			}

			return questionnaires, nil
		}
	}
}
