package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepocket/internal/bootstrap"
	"notepocket/internal/config"
)

// memState is an in-memory persistence adapter for HTTP tests.
type memState struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (m *memState) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[name], nil
}

func (m *memState) Save(_ context.Context, name string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = blob
	return nil
}

func newTestServer(t *testing.T) (*Server, *bootstrap.Container) {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "development",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Storage: config.StorageConfig{
			ChangeTopicName: "STORE_CHANGED",
		},
		Editor: config.EditorConfig{
			SessionTTL: 30 * time.Minute,
		},
	}

	container := bootstrap.NewContainer(&memState{blobs: map[string][]byte{}}, cfg)
	return New(cfg, container), container
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.GetApp().Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp, envelope
}

func TestRequestsAreGatedUntilHydration(t *testing.T) {
	srv, container := newTestServer(t)

	resp, envelope := doJSON(t, srv, http.MethodGet, "/api/note/v1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `"Stores are still loading"`, string(envelope["message"]))

	container.Hydrate(context.Background())

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/note/v1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEditorFlowOverHTTP(t *testing.T) {
	srv, container := newTestServer(t)
	container.Hydrate(context.Background())

	// Open a fresh draft.
	resp, envelope := doJSON(t, srv, http.MethodPost, "/api/editor/v1/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var opened struct {
		SessionId string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &opened))
	require.NotEmpty(t, opened.SessionId)

	// First real edit creates and binds a note.
	resp, envelope = doJSON(t, srv, http.MethodPut, "/api/editor/v1/sessions/"+opened.SessionId,
		map[string]string{"title": "Trip", "content": "pack bags"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var edited struct {
		NoteId string `json:"note_id"`
		Saved  bool   `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &edited))
	assert.True(t, edited.Saved)
	require.NotEmpty(t, edited.NoteId)

	// The note is visible in the collection.
	resp, envelope = doJSON(t, srv, http.MethodGet, "/api/note/v1/"+edited.NoteId, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var note struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &note))
	assert.Equal(t, "Trip", note.Title)
	assert.Equal(t, "pack bags", note.Content)

	// An identical edit is a skipped save.
	resp, envelope = doJSON(t, srv, http.MethodPut, "/api/editor/v1/sessions/"+opened.SessionId,
		map[string]string{"title": "Trip", "content": "pack bags"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(envelope["data"], &edited))
	assert.False(t, edited.Saved)

	// Closing discards the session.
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/editor/v1/sessions/"+opened.SessionId+"/close", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/editor/v1/sessions/"+opened.SessionId,
		map[string]string{"title": "Trip", "content": "late edit"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCleanupWithoutAPIKeyIsConfigurationError(t *testing.T) {
	srv, container := newTestServer(t)
	container.Hydrate(context.Background())

	resp, envelope := doJSON(t, srv, http.MethodPost, "/api/editor/v1/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var opened struct {
		SessionId string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &opened))

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/editor/v1/sessions/"+opened.SessionId,
		map[string]string{"title": "t", "content": "c"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope = doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/editor/v1/sessions/%s/cleanup", opened.SessionId), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(envelope["message"]), "GROQ_API_KEY")
}

func TestSettingsRoundTripOverHTTP(t *testing.T) {
	srv, container := newTestServer(t)
	container.Hydrate(context.Background())

	resp, _ := doJSON(t, srv, http.MethodPut, "/api/settings/v1/theme",
		map[string]string{"appearance": "Dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope := doJSON(t, srv, http.MethodGet, "/api/settings/v1/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var theme struct {
		Appearance string `json:"appearance"`
		ThemeId    string `json:"theme_id"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &theme))
	assert.Equal(t, "Dark", theme.Appearance)

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/settings/v1/theme",
		map[string]string{"appearance": "Sepia"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
