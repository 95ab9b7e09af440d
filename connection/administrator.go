package connection

import (
	"errors"
	"strings"
	"time"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateRequest creates a new pending connection request in the database
func CreateRequest(db *gorm.DB, log logrus.FieldLogger) func(senderId, receiverId uint32, message string, tenantId uuid.UUID) model.Provider[Entity] {
	return func(senderId, receiverId uint32, message string, tenantId uuid.UUID) model.Provider[Entity] {
		return func() (Entity, error) {
			log.WithFields(logrus.Fields{
				"senderId":   senderId,
				"receiverId": receiverId,
				"tenantId":   tenantId,
			}).Debug("Creating connection request entity")

			now := time.Now()
			entity := Entity{
				TenantId:    tenantId,
				SenderId:    senderId,
				ReceiverId:  receiverId,
				Message:     message,
				Stage:       StagePending,
				RequestedAt: now,
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			if err := db.Create(&entity).Error; err != nil {
				return Entity{}, err
			}

			return entity, nil
		}
	}
}

// UpdateRequest persists a request model over its existing row
func UpdateRequest(db *gorm.DB, log logrus.FieldLogger) func(request Request) model.Provider[Entity] {
	return func(request Request) model.Provider[Entity] {
		return func() (Entity, error) {
			log.WithField("requestId", request.Id()).Debug("Updating connection request entity")

			entity := ToEntity(request)
			if err := db.Save(&entity).Error; err != nil {
				return Entity{}, err
			}

			return entity, nil
		}
	}
}

// CreateQuestionnaire creates a new questionnaire. The composite unique index
// rejects a second questionnaire from the same sender for the same request,
// which surfaces as ErrQuestionnaireExists.
func CreateQuestionnaire(db *gorm.DB, log logrus.FieldLogger) func(questionnaire Questionnaire) model.Provider[QuestionnaireEntity] {
	return func(questionnaire Questionnaire) model.Provider[QuestionnaireEntity] {
		return func() (QuestionnaireEntity, error) {
			log.WithFields(logrus.Fields{
				"requestId": questionnaire.RequestId(),
				"senderId":  questionnaire.SenderId(),
				"tenantId":  questionnaire.TenantId(),
			}).Debug("Creating questionnaire entity")

			entity, err := ToQuestionnaireEntity(questionnaire)
			if err != nil {
				return QuestionnaireEntity{}, err
			}

			if err := db.Create(&entity).Error; err != nil {
				if isDuplicateKeyError(err) {
					return QuestionnaireEntity{}, ErrQuestionnaireExists
				}
				return QuestionnaireEntity{}, err
			}

			return entity, nil
		}
	}
}

// UpdateQuestionnaire persists a questionnaire model over its existing row
func UpdateQuestionnaire(db *gorm.DB, log logrus.FieldLogger) func(questionnaire Questionnaire) model.Provider[QuestionnaireEntity] {
	return func(questionnaire Questionnaire) model.Provider[QuestionnaireEntity] {
		return func() (QuestionnaireEntity, error) {
			log.WithField("questionnaireId", questionnaire.Id()).Debug("Updating questionnaire entity")

			entity, err := ToQuestionnaireEntity(questionnaire)
			if err != nil {
				return QuestionnaireEntity{}, err
			}

			if err := db.Save(&entity).Error; err != nil {
				return QuestionnaireEntity{}, err
			}

			return entity, nil
		}
	}
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}
