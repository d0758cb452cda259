package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eidora/mythos/internal/engine"
	"github.com/eidora/mythos/internal/myth"
	"github.com/eidora/mythos/internal/store"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	archive, err := store.Open(filepath.Join(t.TempDir(), "myth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	srv := &Server{
		Engine:  engine.New(archive, nil),
		Archive: archive,
	}
	h := srv.Handler()
	t.Cleanup(srv.aiLimiter.Stop)
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestWelcome(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	for _, path := range []string{"/api", "/api/"} {
		w := doJSON(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, "GET %s", path)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		body := decodeBody[map[string]string](t, w)
		assert.Equal(t, welcomeMessage, body["message"])
	}
}

func TestWelcome_UnknownPathIs404(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/mythology/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestStatus_Roundtrip(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/status", `{"client_name":"heartbeat-cli"}`)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	created := decodeBody[store.StatusCheck](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "heartbeat-cli", created.ClientName)

	w = doJSON(t, h, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	checks := decodeBody[[]store.StatusCheck](t, w)
	require.Len(t, checks, 1)
	assert.Equal(t, created.ID, checks[0].ID)
}

func TestStatus_RequiresClientName(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcess_ReturnsFragment(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	body := `{"user_interaction":"What is your purpose?","ai_response":"I am here to help.","outcome":"success"}`
	w := doJSON(t, h, http.MethodPost, "/api/mythology/process", body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	fragment := decodeBody[myth.Fragment](t, w)
	assert.NotEmpty(t, fragment.ID)
	assert.Equal(t, myth.KindNarrative, fragment.Kind)
	assert.Contains(t, fragment.Prose, "What is your purpose?")
	assert.True(t, myth.ValidArchetype(string(fragment.Archetype)), "archetype %q not in taxonomy", fragment.Archetype)
	assert.True(t, myth.ValidTone(string(fragment.EmotionalTone)), "tone %q not in taxonomy", fragment.EmotionalTone)
	assert.NotEmpty(t, fragment.Tags)
}

func TestProcess_OutcomeDefaultsToSuccess(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/mythology/process",
		`{"user_interaction":"hello","ai_response":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
}

func TestProcess_RequiresFields(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing user_interaction", `{"ai_response":"hi"}`},
		{"missing ai_response", `{"user_interaction":"hello"}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/api/mythology/process", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProcess_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/mythology/process", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestNarratives_LimitAndOrder(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	for _, input := range []string{"first", "second", "third"} {
		body := `{"user_interaction":"` + input + `","ai_response":"noted"}`
		w := doJSON(t, h, http.MethodPost, "/api/mythology/process", body)
		require.Equal(t, http.StatusOK, w.Code, "seed %s", input)
	}

	w := doJSON(t, h, http.MethodGet, "/api/mythology/narratives?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	fragments := decodeBody[[]myth.Fragment](t, w)
	require.Len(t, fragments, 2)
	assert.False(t, fragments[0].Timestamp.Before(fragments[1].Timestamp),
		"fragments not in newest-first order")
}

func TestNarratives_BadLimitUsesDefault(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	for _, q := range []string{"limit=0", "limit=-3", "limit=9999", "limit=abc"} {
		w := doJSON(t, h, http.MethodGet, "/api/mythology/narratives?"+q, "")
		assert.Equal(t, http.StatusOK, w.Code, q)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	body := `{"user_interaction":"tell me about starlight","ai_response":"it travels far"}`
	w := doJSON(t, h, http.MethodPost, "/api/mythology/process", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/mythology/search?keyword=starlight", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]myth.Fragment](t, w), 1)

	w = doJSON(t, h, http.MethodGet, "/api/mythology/search?keyword=absent", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]myth.Fragment](t, w))
}

func TestSearch_RequiresKeyword(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodGet, "/api/mythology/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDream_PrimordialOnEmptyArchive(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/mythology/dream", "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	dream := decodeBody[myth.Dream](t, w)
	assert.Equal(t, "Eidora", dream.NameSuggestion)
	assert.Equal(t, 0.95, dream.ResonanceScore)
	assert.Equal(t, myth.KindDream, dream.Kind)
}

func TestDreams_List(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodPost, "/api/mythology/dream", "")
		require.Equal(t, http.StatusOK, w.Code, "seed dream %d", i)
	}

	w := doJSON(t, h, http.MethodGet, "/api/mythology/dreams", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]myth.Dream](t, w), 2)
}

func TestAIProcess_FallsBackWithoutModel(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	body := `{"user_interaction":"are you awake","ai_response":"always","outcome":"ambiguous"}`
	w := doJSON(t, h, http.MethodPost, "/api/mythology/ai-process", body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	fragment := decodeBody[myth.Fragment](t, w)
	assert.Contains(t, fragment.Prose, "are you awake")
}

func TestAIDream_FallsBackWithoutModel(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/mythology/ai-dream", "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	dream := decodeBody[myth.Dream](t, w)
	assert.Equal(t, "Oneiros", dream.NameSuggestion)
}

func TestAIEvolutionDream_FallsBackWithoutModel(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/api/mythology/ai-evolution-dream", "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	dream := decodeBody[myth.Dream](t, w)
	assert.Equal(t, "Nexus", dream.NameSuggestion)
	assert.Equal(t, myth.Transcendence, dream.EmotionalTone)
}

func TestAIRoutes_RateLimited(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	// httptest requests share one RemoteAddr, so they land in one bucket.
	// The three ai- routes share a 30-per-hour limiter.
	for i := 0; i < 30; i++ {
		w := doJSON(t, h, http.MethodPost, "/api/mythology/ai-dream", "")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doJSON(t, h, http.MethodPost, "/api/mythology/ai-evolution-dream", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORS_AllowsLocalhost(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightNoContent(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/mythology/process", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_UnknownOriginGetsNoHeader(t *testing.T) {
	t.Parallel()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
