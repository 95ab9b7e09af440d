package connection

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"atlas-introductions/profile"
	"atlas-introductions/rest"

	"github.com/Chronicle20/atlas-rest/server"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jtumidanski/api2go/jsonapi"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InitializeRoutes initializes connection-related REST routes
func InitializeRoutes(db *gorm.DB) func(serverInfo jsonapi.ServerInformation) func(router *mux.Router, logger logrus.FieldLogger) {
	return func(serverInfo jsonapi.ServerInformation) func(router *mux.Router, logger logrus.FieldLogger) {
		return func(router *mux.Router, logger logrus.FieldLogger) {
			router.HandleFunc("/requests",
				rest.RegisterInputHandler[CreateRequestInput](logger)(serverInfo)("create_request", createRequestHandler(db))).
				Methods(http.MethodPost)

			router.HandleFunc("/requests/{requestId}",
				rest.RegisterHandler(logger)(serverInfo)("get_request", getRequestHandler(db))).
				Methods(http.MethodGet)

			router.HandleFunc("/requests/{requestId}",
				rest.RegisterInputHandler[UpdateRequestInput](logger)(serverInfo)("update_request", updateRequestHandler(db))).
				Methods(http.MethodPatch)

			router.HandleFunc("/members/{memberId}/requests",
				rest.RegisterHandler(logger)(serverInfo)("get_member_requests", getMemberRequestsHandler(db))).
				Methods(http.MethodGet)

			router.HandleFunc("/requests/{requestId}/questionnaires",
				rest.RegisterInputHandler[CreateQuestionnaireInput](logger)(serverInfo)("send_questionnaire", sendQuestionnaireHandler(db))).
				Methods(http.MethodPost)

			router.HandleFunc("/requests/{requestId}/questionnaires",
				rest.RegisterInputHandler[AnswerQuestionnaireInput](logger)(serverInfo)("answer_questionnaire", answerQuestionnaireHandler(db))).
				Methods(http.MethodPatch)

			router.HandleFunc("/requests/{requestId}/questionnaires",
				rest.RegisterHandler(logger)(serverInfo)("get_questionnaires", getQuestionnairesHandler(db))).
				Methods(http.MethodGet)

			router.HandleFunc("/requests/{requestId}/messaging-eligibility",
				rest.RegisterHandler(logger)(serverInfo)("get_messaging_eligibility", getMessagingEligibilityHandler(db))).
				Methods(http.MethodGet)

			router.HandleFunc("/members/{memberId}/compatibility",
				rest.RegisterInputHandler[CompatibilityInput](logger)(serverInfo)("submit_compatibility", submitCompatibilityHandler(db))).
				Methods(http.MethodPost)
		}
	}
}

func createRequestHandler(db *gorm.DB) rest.InputHandler[CreateRequestInput] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input CreateRequestInput) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			attrs := input.Data.Attributes
			processor := NewProcessor(d.Logger(), d.Context(), db)
			request, err := processor.RequestAndEmit(uuid.New(), attrs.SenderId, attrs.ReceiverId, attrs.Message)
			if err != nil {
				writeLifecycleError(w, err)
				return
			}

			restRequest, err := TransformRequest(request)
			if err != nil {
				writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform request data")
				return
			}

			query := r.URL.Query()
			queryParams := jsonapi.ParseQueryFields(&query)
			server.MarshalResponse[RestRequest](d.Logger())(w)(c.ServerInformation())(queryParams)(restRequest)
		}
	}
}

func getRequestHandler(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				processor := NewProcessor(d.Logger(), d.Context(), db)
				request, err := processor.GetById(requestId)()
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restRequest, err := TransformRequest(request)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform request data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestRequest](d.Logger())(w)(c.ServerInformation())(queryParams)(restRequest)
			}
		})
	}
}

// updateRequestHandler applies the transition implied by the submitted status
// hints. The lifecycle rules stay authoritative; unsupported combinations are
// rejected as validation errors.
func updateRequestHandler(db *gorm.DB) rest.InputHandler[UpdateRequestInput] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input UpdateRequestInput) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				attrs := input.Data.Attributes
				processor := NewProcessor(d.Logger(), d.Context(), db)

				status := strings.ToLower(attrs.RequestStatus)
				stage := strings.ToLower(attrs.ConnectionStage)

				var request Request
				var err error
				switch {
				case status == "rejected" || stage == "rejected":
					request, err = processor.RejectAndEmit(uuid.New(), requestId, attrs.ActorId, attrs.RejectionReason)
				case status == "approved" && stage == "":
					request, err = processor.RespondAndEmit(uuid.New(), requestId, attrs.ActorId, "APPROVE")
				case stage == "accepted":
					request, err = processor.RespondAndEmit(uuid.New(), requestId, attrs.ActorId, "APPROVE")
				case stage == "connected":
					request, err = processor.SkipCompatibilityAndEmit(uuid.New(), requestId, attrs.ActorId)
				case stage == "questionnaire_completed":
					request, err = processor.RecheckCompletionAndEmit(uuid.New(), requestId)
				default:
					writeErrorResponse(w, http.StatusBadRequest, "No transition matches the submitted status hints")
					return
				}
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restRequest, err := TransformRequest(request)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform request data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestRequest](d.Logger())(w)(c.ServerInformation())(queryParams)(restRequest)
			}
		})
	}
}

func getMemberRequestsHandler(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseMemberId(d.Logger(), func(memberId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				processor := NewProcessor(d.Logger(), d.Context(), db)
				requests, err := processor.GetByParticipant(memberId)()
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restRequests, err := TransformRequests(requests)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform request data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[[]RestRequest](d.Logger())(w)(c.ServerInformation())(queryParams)(restRequests)
			}
		})
	}
}

func sendQuestionnaireHandler(db *gorm.DB) rest.InputHandler[CreateQuestionnaireInput] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input CreateQuestionnaireInput) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				attrs := input.Data.Attributes
				processor := NewProcessor(d.Logger(), d.Context(), db)
				questionnaire, err := processor.SendQuestionnaireAndEmit(uuid.New(), requestId, attrs.SenderId, attrs.Questions)
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restQuestionnaire, err := TransformQuestionnaire(questionnaire)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform questionnaire data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestQuestionnaire](d.Logger())(w)(c.ServerInformation())(queryParams)(restQuestionnaire)
			}
		})
	}
}

func answerQuestionnaireHandler(db *gorm.DB) rest.InputHandler[AnswerQuestionnaireInput] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input AnswerQuestionnaireInput) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				attrs := input.Data.Attributes
				processor := NewProcessor(d.Logger(), d.Context(), db)
				questionnaire, err := processor.AnswerQuestionnaireAndEmit(uuid.New(), attrs.QuestionnaireId, attrs.ActorId, attrs.Answers)
				if err != nil {
					writeLifecycleError(w, err)
					return
				}
				if questionnaire.RequestId() != requestId {
					writeErrorResponse(w, http.StatusBadRequest, "Questionnaire does not belong to the request")
					return
				}

				restQuestionnaire, err := TransformQuestionnaire(questionnaire)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform questionnaire data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestQuestionnaire](d.Logger())(w)(c.ServerInformation())(queryParams)(restQuestionnaire)
			}
		})
	}
}

func getQuestionnairesHandler(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				actorId, err := strconv.ParseUint(r.URL.Query().Get("actorId"), 10, 32)
				if err != nil {
					writeErrorResponse(w, http.StatusBadRequest, "actorId query parameter required")
					return
				}

				processor := NewProcessor(d.Logger(), d.Context(), db)
				questionnaires, err := processor.GetQuestionnaires(requestId, uint32(actorId))()
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restQuestionnaires, err := TransformQuestionnaires(questionnaires)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform questionnaire data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[[]RestQuestionnaire](d.Logger())(w)(c.ServerInformation())(queryParams)(restQuestionnaires)
			}
		})
	}
}

func getMessagingEligibilityHandler(db *gorm.DB) rest.GetHandler {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext) http.HandlerFunc {
		return rest.ParseRequestId(d.Logger(), func(requestId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				processor := NewProcessor(d.Logger(), d.Context(), db)
				canMessage, err := processor.CanMessage(requestId)()
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				eligibility := RestMessagingEligibility{
					RequestId:  requestId,
					CanMessage: canMessage,
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[RestMessagingEligibility](d.Logger())(w)(c.ServerInformation())(queryParams)(eligibility)
			}
		})
	}
}

func submitCompatibilityHandler(db *gorm.DB) rest.InputHandler[CompatibilityInput] {
	return func(d *rest.HandlerDependency, c *rest.HandlerContext, input CompatibilityInput) http.HandlerFunc {
		return rest.ParseMemberId(d.Logger(), func(memberId uint32) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				attrs := input.Data.Attributes
				answers := profile.Answers{
					MarriageUnderstanding:       attrs.MarriageUnderstanding,
					LifeGoals:                   attrs.LifeGoals,
					PartnerTraits:               attrs.PartnerTraits,
					HobbiesInterests:            attrs.HobbiesInterests,
					ReligiousPracticeImportance: attrs.ReligiousPracticeImportance,
					SpiritualGrowth:             attrs.SpiritualGrowth,
					SectPreference:              attrs.SectPreference,
					ChildrenPreference:          attrs.ChildrenPreference,
					ConflictResolution:          attrs.ConflictResolution,
				}

				processor := NewProcessor(d.Logger(), d.Context(), db)
				advanced, err := processor.SubmitCompatibilityAndEmit(uuid.New(), memberId, profile.ReligiousBackground(attrs.ReligiousBackground), answers)
				if err != nil {
					writeLifecycleError(w, err)
					return
				}

				restRequests, err := TransformRequests(advanced)
				if err != nil {
					writeErrorResponse(w, http.StatusInternalServerError, "Failed to transform request data")
					return
				}

				query := r.URL.Query()
				queryParams := jsonapi.ParseQueryFields(&query)
				server.MarshalResponse[[]RestRequest](d.Logger())(w)(c.ServerInformation())(queryParams)(restRequests)
			}
		})
	}
}

// writeLifecycleError maps lifecycle error codes to HTTP statuses
func writeLifecycleError(w http.ResponseWriter, err error) {
	var le LifecycleError
	if !errors.As(err, &le) {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch le.Code {
	case ErrorCodeNotFound:
		writeErrorResponse(w, http.StatusNotFound, le.Message)
	case ErrorCodeForbidden:
		writeErrorResponse(w, http.StatusForbidden, le.Message)
	case ErrorCodeInvalidState, ErrorCodeConflict:
		writeErrorResponse(w, http.StatusConflict, le.Message)
	case ErrorCodeValidation:
		writeErrorResponse(w, http.StatusBadRequest, le.Message)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, le.Message)
	}
}

// writeErrorResponse writes a JSON error response
func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error": map[string]interface{}{
			"status": statusCode,
			"title":  http.StatusText(statusCode),
			"detail": message,
		},
	}

	_ = json.NewEncoder(w).Encode(errorResponse)
}
