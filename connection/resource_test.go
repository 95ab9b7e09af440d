package connection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestConnectionResourceIntegration tests the REST API endpoints for connection functionality
func TestConnectionResourceIntegration(t *testing.T) {
	db := setupTestDB(t)
	tenantId := uuid.New()
	setupTestConnectionData(t, db, tenantId)

	router := setupTestRouter(db)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	t.Run("GetRequestEndpoint", func(t *testing.T) {
		testGetRequestEndpoint(t, testServer, tenantId)
	})

	t.Run("GetMemberRequestsEndpoint", func(t *testing.T) {
		testGetMemberRequestsEndpoint(t, testServer, tenantId)
	})

	t.Run("GetQuestionnairesEndpoint", func(t *testing.T) {
		testGetQuestionnairesEndpoint(t, testServer, tenantId)
	})

	t.Run("GetMessagingEligibilityEndpoint", func(t *testing.T) {
		testGetMessagingEligibilityEndpoint(t, testServer, tenantId)
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		testTenantIsolation(t, testServer)
	})
}

// setupTestRouter creates a test router with connection routes
func setupTestRouter(db *gorm.DB) *mux.Router {
	router := mux.NewRouter()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	serverInfo := testServerInfo{}

	routeInitializer := InitializeRoutes(db)(serverInfo)
	routeInitializer(router, logger)

	return router
}

// testServerInfo implements jsonapi.ServerInformation for testing
type testServerInfo struct{}

func (t testServerInfo) GetVersion() string { return "1.0.0" }
func (t testServerInfo) GetURI() string     { return "/api/ins/" }
func (t testServerInfo) GetPrefix() string  { return "/api/ins/" }
func (t testServerInfo) GetBaseURL() string { return "http://localhost:8080" }

// setupTestConnectionData creates test connection data in the database
func setupTestConnectionData(t *testing.T, db *gorm.DB, tenantId uuid.UUID) {
	now := time.Now()

	// Pending request from member 100 to member 200
	pendingEntity := Entity{
		ID:          1,
		TenantId:    tenantId,
		SenderId:    100,
		ReceiverId:  200,
		Message:     "introduction",
		Stage:       StagePending,
		RequestedAt: now.Add(-2 * time.Hour),
		CreatedAt:   now.Add(-2 * time.Hour),
		UpdatedAt:   now.Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(&pendingEntity).Error)

	// Accepted pairing between members 300 and 400 with questionnaires
	respondedAt := now.Add(-1 * time.Hour)
	acceptedEntity := Entity{
		ID:                     2,
		TenantId:               tenantId,
		SenderId:               300,
		ReceiverId:             400,
		Stage:                  StageQuestionnaireSent,
		HasUnansweredQuestions: true,
		RequestedAt:            now.Add(-3 * time.Hour),
		RespondedAt:            &respondedAt,
		CreatedAt:              now.Add(-3 * time.Hour),
		UpdatedAt:              respondedAt,
	}
	require.NoError(t, db.Create(&acceptedEntity).Error)

	questionnaireEntity := QuestionnaireEntity{
		ID:         1,
		TenantId:   tenantId,
		RequestId:  2,
		SenderId:   300,
		ReceiverId: 400,
		Questions:  `[{"question":"What are your life goals?"}]`,
		Status:     QuestionnaireStatusPending,
		CreatedAt:  respondedAt,
		UpdatedAt:  respondedAt,
	}
	require.NoError(t, db.Create(&questionnaireEntity).Error)

	// Connected pairing between members 500 and 600
	completedAt := now.Add(-30 * time.Minute)
	connectedEntity := Entity{
		ID:          3,
		TenantId:    tenantId,
		SenderId:    500,
		ReceiverId:  600,
		Stage:       StageConnected,
		RequestedAt: now.Add(-4 * time.Hour),
		RespondedAt: &respondedAt,
		CompletedAt: &completedAt,
		CreatedAt:   now.Add(-4 * time.Hour),
		UpdatedAt:   completedAt,
	}
	require.NoError(t, db.Create(&connectedEntity).Error)
}

// createRequestWithTenant creates an HTTP request with tenant headers
func createRequestWithTenant(method, url string, body []byte, tenantId uuid.UUID) *http.Request {
	var req *http.Request
	var err error

	if body != nil {
		req, err = http.NewRequest(method, url, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		panic(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TENANT_ID", tenantId.String())
	req.Header.Set("REGION", "GMS")
	req.Header.Set("MAJOR_VERSION", "83")
	req.Header.Set("MINOR_VERSION", "1")

	return req
}

func testGetRequestEndpoint(t *testing.T, testServer *httptest.Server, tenantId uuid.UUID) {
	t.Run("GetPendingRequest", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/1", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

		data, ok := response["data"].(map[string]interface{})
		require.True(t, ok, "Expected JSON:API data object")
		assert.Equal(t, "1", data["id"])

		attributes, ok := data["attributes"].(map[string]interface{})
		require.True(t, ok, "Expected attributes object")
		assert.Equal(t, "pending", attributes["requestStatus"])
		assert.Equal(t, "none", attributes["connectionStage"])
	})

	t.Run("GetConnectedRequest", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/3", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

		data := response["data"].(map[string]interface{})
		attributes := data["attributes"].(map[string]interface{})
		assert.Equal(t, "approved", attributes["requestStatus"])
		assert.Equal(t, "connected", attributes["connectionStage"])
	})

	t.Run("RequestNotFound", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/999", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func testGetMemberRequestsEndpoint(t *testing.T, testServer *httptest.Server, tenantId uuid.UUID) {
	t.Run("MemberWithRequests", func(t *testing.T) {
		url := fmt.Sprintf("%s/members/100/requests", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

		data, ok := response["data"].([]interface{})
		require.True(t, ok, "Expected JSON:API data array")
		assert.Len(t, data, 1)
	})

	t.Run("MemberWithoutRequests", func(t *testing.T) {
		url := fmt.Sprintf("%s/members/999/requests", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

		data, ok := response["data"].([]interface{})
		require.True(t, ok, "Expected JSON:API data array")
		assert.Len(t, data, 0)
	})
}

func testGetQuestionnairesEndpoint(t *testing.T, testServer *httptest.Server, tenantId uuid.UUID) {
	t.Run("ParticipantSeesQuestionnaires", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/2/questionnaires?actorId=400", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

		data, ok := response["data"].([]interface{})
		require.True(t, ok, "Expected JSON:API data array")
		assert.Len(t, data, 1)
	})

	t.Run("OutsiderForbidden", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/2/questionnaires?actorId=999", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("MissingActorId", func(t *testing.T) {
		url := fmt.Sprintf("%s/requests/2/questionnaires", testServer.URL)
		req := createRequestWithTenant("GET", url, nil, tenantId)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func testGetMessagingEligibilityEndpoint(t *testing.T, testServer *httptest.Server, tenantId uuid.UUID) {
	tests := []struct {
		name       string
		requestId  uint32
		canMessage bool
	}{
		{"PendingPairing", 1, false},
		{"QuestionnaireSentPairing", 2, false},
		{"ConnectedPairing", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := fmt.Sprintf("%s/requests/%d/messaging-eligibility", testServer.URL, tt.requestId)
			req := createRequestWithTenant("GET", url, nil, tenantId)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))

			data, ok := response["data"].(map[string]interface{})
			require.True(t, ok, "Expected JSON:API data object")
			attributes := data["attributes"].(map[string]interface{})
			assert.Equal(t, tt.canMessage, attributes["canMessage"])
		})
	}
}

func testTenantIsolation(t *testing.T, testServer *httptest.Server) {
	otherTenant := uuid.New()

	url := fmt.Sprintf("%s/requests/1", testServer.URL)
	req := createRequestWithTenant("GET", url, nil, otherTenant)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
