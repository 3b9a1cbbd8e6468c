package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/dto"
	"github.com/SaifHossain4/student-feedback-dashboard/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires the real routing table over an in-memory SQLite store
func setupTestApp(t *testing.T) (*fiber.App, *repository.FeedbackRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&domain.Feedback{})
	require.NoError(t, err)

	repo := repository.NewFeedbackRepository(db)
	app := fiber.New()
	RegisterRoutes(app, NewFeedbackHandler(repo))

	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	var reqBody io.Reader
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, respBody
}

func TestRootBanner(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Feedback API running", string(body))
}

func TestCreateFeedback(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/feedback", `{"rating":5,"comment":"Great course"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Feedback
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, uint64(1), created.ID)
	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, "Great course", created.Comment)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"rating zero", `{"rating":0,"comment":"fine"}`},
		{"rating six", `{"rating":6,"comment":"fine"}`},
		{"rating fractional", `{"rating":3.5,"comment":"fine"}`},
		{"rating string", `{"rating":"x","comment":"fine"}`},
		{"rating missing", `{"comment":"fine"}`},
		{"comment empty", `{"rating":3,"comment":""}`},
		{"comment whitespace", `{"rating":3,"comment":"   "}`},
		{"comment missing", `{"rating":3}`},
		{"malformed json", `{"rating":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, repo := setupTestApp(t)

			resp, body := doJSON(t, app, http.MethodPost, "/api/feedback", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errBody dto.ErrorBody
			require.NoError(t, json.Unmarshal(body, &errBody))
			assert.NotEmpty(t, errBody.Error)

			// No row may be created on a rejected submission
			items, err := repo.ListAll()
			require.NoError(t, err)
			assert.Len(t, items, 0)
		})
	}
}

func TestListReturnsEmptyArray(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/feedback", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", string(body))
}

func TestListNewestFirst(t *testing.T) {
	app, repo := setupTestApp(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&domain.Feedback{Rating: 1, Comment: "older", CreatedAt: base}))
	require.NoError(t, repo.Create(&domain.Feedback{Rating: 2, Comment: "newer", CreatedAt: base.Add(time.Hour)}))

	resp, body := doJSON(t, app, http.MethodGet, "/api/feedback", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []domain.Feedback
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Comment)
	assert.Equal(t, "older", items[1].Comment)
}

func TestUpdateFeedback(t *testing.T) {
	app, repo := setupTestApp(t)

	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	feedback := &domain.Feedback{Rating: 5, Comment: "Great course", CreatedAt: createdAt}
	require.NoError(t, repo.Create(feedback))

	path := fmt.Sprintf("/api/feedback/%d", feedback.ID)
	resp, body := doJSON(t, app, http.MethodPut, path, `{"rating":4,"comment":"Actually good"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Feedback
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, feedback.ID, updated.ID)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Actually good", updated.Comment)
	assert.Equal(t, createdAt.Unix(), updated.CreatedAt.Unix(), "created_at must survive the edit")
}

func TestUpdateNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPut, "/api/feedback/999999", `{"rating":4,"comment":"whatever"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errBody dto.ErrorBody
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Not found", errBody.Error)
}

func TestUpdateValidationBeforeLookup(t *testing.T) {
	app, repo := setupTestApp(t)

	feedback := &domain.Feedback{Rating: 5, Comment: "fine"}
	require.NoError(t, repo.Create(feedback))

	path := fmt.Sprintf("/api/feedback/%d", feedback.ID)
	resp, _ := doJSON(t, app, http.MethodPut, path, `{"rating":9,"comment":"fine"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Row unchanged
	stored, err := repo.FindByID(feedback.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
}

func TestUpdateInvalidID(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/feedback/abc", `{"rating":4,"comment":"fine"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteIsIdempotent(t *testing.T) {
	app, repo := setupTestApp(t)

	feedback := &domain.Feedback{Rating: 2, Comment: "Too fast"}
	require.NoError(t, repo.Create(feedback))

	path := fmt.Sprintf("/api/feedback/%d", feedback.ID)

	resp, body := doJSON(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	items, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, items, 0)

	// Second delete of the same id still acknowledges
	resp, body = doJSON(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestDBCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/db-check", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var check dto.DBCheckBody
	require.NoError(t, json.Unmarshal(body, &check))
	assert.True(t, check.OK)
	require.NotNil(t, check.Now)
	assert.False(t, check.Now.IsZero())
}

// Full round trip from the wire contract: two submissions, list order,
// edit preserving identity, delete excluding the row.
func TestFeedbackLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/feedback", `{"rating":5,"comment":"Great course"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first domain.Feedback
	require.NoError(t, json.Unmarshal(body, &first))

	resp, body = doJSON(t, app, http.MethodPost, "/api/feedback", `{"rating":2,"comment":"Too fast"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second domain.Feedback
	require.NoError(t, json.Unmarshal(body, &second))
	assert.Greater(t, second.ID, first.ID)

	// Newest first
	resp, body = doJSON(t, app, http.MethodGet, "/api/feedback", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []domain.Feedback
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	// Edit the first submission
	path := fmt.Sprintf("/api/feedback/%d", first.ID)
	resp, body = doJSON(t, app, http.MethodPut, path, `{"rating":4,"comment":"Actually good"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited domain.Feedback
	require.NoError(t, json.Unmarshal(body, &edited))
	assert.Equal(t, first.ID, edited.ID)
	assert.Equal(t, first.CreatedAt.Unix(), edited.CreatedAt.Unix())

	// Delete the second, list shrinks to the first
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/feedback/%d", second.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/feedback", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, 4, items[0].Rating)
	assert.Equal(t, "Actually good", items[0].Comment)
}
