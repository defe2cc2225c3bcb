package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/francescamaronna/appcolaboraciones/db"
	"github.com/francescamaronna/appcolaboraciones/internal/auth"
	"github.com/francescamaronna/appcolaboraciones/internal/models"
	"github.com/francescamaronna/appcolaboraciones/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.DB = gormDB

	require.NoError(t, db.DB.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Subscription{},
		&models.Project{},
		&models.Publication{},
		&models.ProjectCollaborator{},
		&models.CollaborationRequest{},
		&models.Profile{},
		&models.Feedback{},
		&models.Rating{},
	))

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	return payload
}

func registerUser(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payload := decode(t, w)
	token, ok := payload["token"].(string)
	require.True(t, ok)

	return token
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupAPI(t)

	registerUser(t, r, "Ana", "ana@example.com")

	// Duplicate email is rejected
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := registerUser(t, r, "Ana", "ana@example.com")

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCollaborationFlow(t *testing.T) {
	r := setupAPI(t)

	ownerToken := registerUser(t, r, "Rita", "rita@example.com")
	requesterToken := registerUser(t, r, "Quim", "quim@example.com")

	// Owner creates a project
	w := doJSON(t, r, http.MethodPost, "/api/projects", ownerToken, gin.H{
		"name":        "Huerta urbana",
		"description": "Colaboradores para la huerta",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	projectID := uint(decode(t, w)["id"].(float64))

	// Owner publishes an offer
	w = doJSON(t, r, http.MethodPost, "/api/publications", ownerToken, gin.H{
		"project_id":  projectID,
		"kind":        "offer",
		"title":       "Buscamos manos",
		"description": "Riego y cosecha",
		"skills":      []string{"riego"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Anonymous feed: CTA is no-login
	w = doJSON(t, r, http.MethodGet, "/api/feed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	feed := decode(t, w)
	items := feed["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "no-login", items[0].(map[string]interface{})["cta"])

	// Requester's feed: not associated yet
	w = doJSON(t, r, http.MethodGet, "/api/feed", requesterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items = decode(t, w)["items"].([]interface{})
	assert.Equal(t, "not-associated", items[0].(map[string]interface{})["cta"])

	// Requester submits a join request
	w = doJSON(t, r, http.MethodPost, "/api/requests", requesterToken, gin.H{
		"project_id": projectID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	submitted := decode(t, w)
	requestID := uint(submitted["request_id"].(float64))
	pendingIDs := submitted["pending_project_ids"].([]interface{})
	require.Len(t, pendingIDs, 1)
	assert.EqualValues(t, projectID, pendingIDs[0].(float64))

	// A second submit conflicts
	w = doJSON(t, r, http.MethodPost, "/api/requests", requesterToken, gin.H{
		"project_id": projectID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Feed now shows pending
	w = doJSON(t, r, http.MethodGet, "/api/feed", requesterToken, nil)
	items = decode(t, w)["items"].([]interface{})
	assert.Equal(t, "pending", items[0].(map[string]interface{})["cta"])

	// The requester cannot decide their own request
	path := fmt.Sprintf("/api/requests/%d/decision", requestID)
	w = doJSON(t, r, http.MethodPost, path, requesterToken, gin.H{"outcome": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner sees the pending request listed
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/requests", projectID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Quim", summaries[0]["requester_name"])

	// Owner approves
	w = doJSON(t, r, http.MethodPost, path, ownerToken, gin.H{"outcome": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A second decision conflicts
	w = doJSON(t, r, http.MethodPost, path, ownerToken, gin.H{"outcome": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Feed flips to approved after reload
	w = doJSON(t, r, http.MethodGet, "/api/feed", requesterToken, nil)
	items = decode(t, w)["items"].([]interface{})
	assert.Equal(t, "approved", items[0].(map[string]interface{})["cta"])

	// Membership index endpoint agrees
	w = doJSON(t, r, http.MethodGet, "/api/me/memberships", requesterToken, nil)
	memberships := decode(t, w)
	approved := memberships["approved_project_ids"].([]interface{})
	require.Len(t, approved, 1)
	assert.EqualValues(t, projectID, approved[0].(float64))
	assert.Empty(t, memberships["pending_project_ids"])
}

func TestCatalogCountsVisibility(t *testing.T) {
	r := setupAPI(t)

	ownerToken := registerUser(t, r, "Rita", "rita@example.com")
	visitorToken := registerUser(t, r, "Vito", "vito@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", ownerToken, gin.H{"name": "Huerta"})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := uint(decode(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPost, "/api/requests", visitorToken, gin.H{"project_id": projectID})
	require.Equal(t, http.StatusCreated, w.Code)

	// The responsible sees the pending count
	w = doJSON(t, r, http.MethodGet, "/api/projects", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cards []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, true, cards[0]["is_responsible"])
	assert.EqualValues(t, 1, cards[0]["pending_requests"])

	// Another user does not get the field at all
	w = doJSON(t, r, http.MethodGet, "/api/projects", visitorToken, nil)
	cards = nil // fresh decode: Unmarshal into a reused map keeps stale keys
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, false, cards[0]["is_responsible"])
	_, present := cards[0]["pending_requests"]
	assert.False(t, present, "pending_requests must be omitted, not zero")
}

func TestProfileUpsert(t *testing.T) {
	r := setupAPI(t)

	token := registerUser(t, r, "Ana", "ana@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/me/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", decode(t, w)["collaborator_status"])

	w = doJSON(t, r, http.MethodPut, "/api/me/profile", token, gin.H{
		"bio":      "Ingeniera agrónoma",
		"industry": "agro",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/me/profile", token, nil)
	assert.Equal(t, "approved", decode(t, w)["collaborator_status"])

	// Second save updates in place
	w = doJSON(t, r, http.MethodPut, "/api/me/profile", token, gin.H{"bio": "Actualizada"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlanAndFeedbackCRUD(t *testing.T) {
	r := setupAPI(t)

	token := registerUser(t, r, "Ana", "ana@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/plans", token, gin.H{"name": "Pro", "price": 9.99})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	planID := uint(decode(t, w)["ID"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/plans", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/plans/%d", planID), token, gin.H{"name": "Pro+", "price": 19.99})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/plans/%d", planID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/feedback", "", gin.H{"stars": 4, "comment": "Muy buena app"})
	require.Equal(t, http.StatusCreated, w.Code)
	feedbackID := uint(decode(t, w)["ID"].(float64))

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/feedback/%d", feedbackID), token, gin.H{"comment": "Editado"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/feedback/%d", feedbackID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
