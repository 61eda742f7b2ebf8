package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatehub/api-gateway/handlers"
	"templatehub/api-gateway/internal/testutil"
	"templatehub/api-gateway/middleware"
	"templatehub/api-gateway/services"
)

const (
	testAdminEmail = "dev@automaticnation.com"
	testAdminToken = "admin-token"
)

type recordingNotifier struct {
	calls int
	err   error
}

func (n *recordingNotifier) Notify(context.Context, string, string) error {
	n.calls++
	return n.err
}

// stubAuthenticator accepts testAdminToken as the only valid session and
// signs in any email with the session email mirrored back.
type stubAuthenticator struct {
	signInCalls int
}

func (s *stubAuthenticator) SignIn(email, password string) (*services.Session, error) {
	s.signInCalls++
	if password != "correct-password" {
		return nil, errors.New("invalid login credentials")
	}
	return &services.Session{
		AccessToken: testAdminToken,
		User:        services.User{ID: "user-1", Email: email},
	}, nil
}

func (s *stubAuthenticator) UserFromToken(token string) (*services.User, error) {
	if token != testAdminToken {
		return nil, errors.New("invalid token")
	}
	return &services.User{ID: "user-1", Email: testAdminEmail}, nil
}

func (s *stubAuthenticator) SignOut(string) error { return nil }

type testEnv struct {
	store    *testutil.FakeStore
	auth     *stubAuthenticator
	notifier *recordingNotifier
	app      *fiber.App
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, client := testutil.NewFakeStore(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	templateService := services.NewTemplateService(client, log)
	submissionService := services.NewSubmissionService(client, templateService, "https://example.com/placeholder.png", log)
	notifier := &recordingNotifier{}
	requestService := services.NewRequestService(client, notifier, log)
	auth := &stubAuthenticator{}
	authService := services.NewAuthService(auth, services.AllowedEmails(testAdminEmail), log)

	h := handlers.NewApplicationHandler(templateService, submissionService, requestService, authService, log)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/templates", h.ListPublishedTemplates)
	apiV1.Get("/templates/:id", h.GetTemplate)
	apiV1.Post("/templates/:id/requests", h.RequestTemplateAccess)
	apiV1.Post("/submissions", h.SubmitTemplate)
	apiV1.Post("/auth/login", h.Login)
	apiV1.Post("/auth/logout", h.Logout)
	apiV1.Get("/auth/me", h.Me)

	admin := apiV1.Group("/admin", middleware.RequireAdmin(authService))
	admin.Get("/templates", h.ListAllTemplates)
	admin.Post("/templates", h.CreateTemplate)
	admin.Put("/templates/:id", h.UpdateTemplate)
	admin.Delete("/templates/:id", h.DeleteTemplate)
	admin.Patch("/templates/:id/publish", h.SetTemplatePublishState)
	admin.Get("/templates/:id/requests", h.ListTemplateRequests)

	return &testEnv{store: store, auth: auth, notifier: notifier, app: app}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "success", envelope.Status)

	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func TestPublicListingShowsOnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("templates",
		testutil.Row{"id": "tpl-1", "title": "Live", "status": "published", "created_at": "2026-01-01T00:00:00Z"},
		testutil.Row{"id": "tpl-2", "title": "Hidden", "status": "draft", "created_at": "2026-01-02T00:00:00Z"},
		testutil.Row{"id": "tpl-3", "title": "Waiting", "status": "pending", "created_at": "2026-01-03T00:00:00Z"},
	)

	resp := env.request(t, http.MethodGet, "/api/v1/templates", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	templates := decodeData[[]map[string]interface{}](t, resp)
	require.Len(t, templates, 1)
	assert.Equal(t, "tpl-1", templates[0]["id"])
}

func TestGetTemplateNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/templates/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestAccessValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/templates/tpl-1/requests", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, env.notifier.calls)
}

func TestRequestAccessRecordsAndNotifies(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/templates/tpl-1/requests", "", map[string]string{"email": "user@example.com"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	rows := env.store.Rows("requests")
	require.Len(t, rows, 1)
	assert.Equal(t, "user@example.com", rows[0]["email"])
	assert.Equal(t, "tpl-1", rows[0]["template_id"])
	assert.Equal(t, 1, env.notifier.calls)
}

func TestSubmitTemplateCreatesPendingEntry(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/submissions", "", map[string]interface{}{
		"firstName":    "Jane",
		"lastName":     "Doe",
		"email":        "jane@x.com",
		"templateName": "My Tracker",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeData[map[string]interface{}](t, resp)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "submission", created["source"])
	assert.Equal(t, "Jane Doe", created["creator"].(map[string]interface{})["name"])
}

func TestSubmitTemplateRequiresNameAndEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/submissions", "", map[string]string{"firstName": "Jane"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, env.store.Rows("templates"))
}

func TestAdminSurfaceRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/admin/templates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/admin/templates", "wrong-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminListIncludesDrafts(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("templates",
		testutil.Row{"id": "tpl-1", "status": "published", "created_at": "2026-01-01T00:00:00Z"},
		testutil.Row{"id": "tpl-2", "status": "draft", "created_at": "2026-01-02T00:00:00Z"},
	)

	resp := env.request(t, http.MethodGet, "/api/v1/admin/templates", testAdminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	templates := decodeData[[]map[string]interface{}](t, resp)
	assert.Len(t, templates, 2)
}

func TestAdminCreateAndPublishToggle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/admin/templates", testAdminToken, map[string]interface{}{
		"title":    "New Entry",
		"features": []string{"One", "Two"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeData[map[string]interface{}](t, resp)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "draft", created["status"])

	resp = env.request(t, http.MethodPatch, "/api/v1/admin/templates/"+id+"/publish", testAdminToken, map[string]bool{"publish": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	published := decodeData[map[string]interface{}](t, resp)
	assert.Equal(t, "published", published["status"])
}

func TestAdminUpdateRejectsOversizedFeatureList(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("templates", testutil.Row{"id": "tpl-1", "status": "draft", "created_at": "2026-01-01T00:00:00Z"})

	resp := env.request(t, http.MethodPut, "/api/v1/admin/templates/tpl-1", testAdminToken, map[string]interface{}{
		"title":    "Too many",
		"features": []string{"a", "b", "c", "d"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminUpdateAllowsBlankPaddingEntries(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("templates", testutil.Row{"id": "tpl-1", "status": "draft", "created_at": "2026-01-01T00:00:00Z"})

	// The edit form pads lists with blanks; blanks do not count toward the
	// bound.
	resp := env.request(t, http.MethodPut, "/api/v1/admin/templates/tpl-1", testAdminToken, map[string]interface{}{
		"title":    "Padded",
		"features": []string{"a", "b", "c", ""},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminDelete(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("templates", testutil.Row{"id": "tpl-1", "status": "draft"})

	resp := env.request(t, http.MethodDelete, "/api/v1/admin/templates/tpl-1", testAdminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.store.Rows("templates"))
}

func TestLoginRejectsNonAdminWithoutBackendCall(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "random@example.com",
		"password": "correct-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, env.auth.signInCalls)
}

func TestLoginSucceedsForAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "correct-password",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	session := decodeData[map[string]interface{}](t, resp)
	assert.Equal(t, testAdminToken, session["accessToken"])
}

func TestMeReturnsAdminUser(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/auth/me", testAdminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	user := decodeData[map[string]interface{}](t, resp)
	assert.Equal(t, testAdminEmail, user["email"])

	resp = env.request(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequestAuditLog(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed("requests",
		testutil.Row{"id": "req-1", "email": "a@x.com", "template_id": "tpl-1", "requested_at": "2026-01-01T00:00:00Z"},
		testutil.Row{"id": "req-2", "email": "b@x.com", "template_id": "tpl-1", "requested_at": "2026-01-02T00:00:00Z"},
	)

	resp := env.request(t, http.MethodGet, "/api/v1/admin/templates/tpl-1/requests", testAdminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	requests := decodeData[[]map[string]interface{}](t, resp)
	require.Len(t, requests, 2)
	assert.Equal(t, "req-2", requests[0]["id"])
}
