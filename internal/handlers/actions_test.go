package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/game"
)

func newTestServer(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	h := newTestHandler(t)
	router := SetupRouter(h, h.config, &RouterOptions{
		DisableRateLimiting:  true,
		DisableRequestLogger: true,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return h, server
}

func createSession(t *testing.T, server *httptest.Server) sessionCreatedResponse {
	t.Helper()
	resp, err := http.Post(server.URL+"/session/new", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created sessionCreatedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func say(t *testing.T, server *httptest.Server, code, text string) utteranceResponse {
	t.Helper()
	body, err := json.Marshal(utteranceRequest{Text: text})
	require.NoError(t, err)

	resp, err := http.Post(
		fmt.Sprintf("%s/session/%s/utterance", server.URL, code),
		"application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out utteranceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateSession(t *testing.T) {
	_, server := newTestServer(t)

	created := createSession(t, server)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.Code, 5)
	assert.Equal(t, game.PhaseIdle, created.Phase)

	other := createSession(t, server)
	assert.NotEqual(t, created.Code, other.Code)
}

func TestHandleUtterance(t *testing.T) {
	t.Run("drives the session through registration", func(t *testing.T) {
		_, server := newTestServer(t)
		created := createSession(t, server)

		out := say(t, server, created.Code, "okay let's start")
		assert.Equal(t, game.PhaseRegistration, out.Phase)
		assert.Contains(t, out.Directives, "[START]")

		out = say(t, server, created.Code, "Maria")
		assert.Contains(t, out.Directives, "[REGISTER:Maria]")

		say(t, server, created.Code, "Luis")
		say(t, server, created.Code, "Ana")

		out = say(t, server, created.Code, "listos")
		assert.Equal(t, game.PhaseRoleReveal, out.Phase)
		assert.Contains(t, out.Directives, "[BEGIN_GAME]")
	})

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		_, server := newTestServer(t)

		body := bytes.NewReader([]byte(`{"text":"start"}`))
		resp, err := http.Post(server.URL+"/session/XXXXX/utterance", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, server := newTestServer(t)
		created := createSession(t, server)

		body := bytes.NewReader([]byte(`{"text":"   "}`))
		resp, err := http.Post(fmt.Sprintf("%s/session/%s/utterance", server.URL, created.Code), "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		_, server := newTestServer(t)
		created := createSession(t, server)

		body := bytes.NewReader([]byte(`not json`))
		resp, err := http.Post(fmt.Sprintf("%s/session/%s/utterance", server.URL, created.Code), "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetState(t *testing.T) {
	_, server := newTestServer(t)
	created := createSession(t, server)

	say(t, server, created.Code, "start")
	say(t, server, created.Code, "Maria")
	say(t, server, created.Code, "Luis")

	resp, err := http.Get(fmt.Sprintf("%s/session/%s/state", server.URL, created.Code))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state game.UIState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, game.PhaseRegistration, state.Phase)
	assert.Equal(t, []string{"Maria", "Luis"}, state.Players)
	assert.Equal(t, 2, state.TotalPlayers)

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/session/XXXXX/state")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestResetSession(t *testing.T) {
	_, server := newTestServer(t)
	created := createSession(t, server)

	say(t, server, created.Code, "start")
	say(t, server, created.Code, "Maria")

	resp, err := http.Post(fmt.Sprintf("%s/session/%s/reset", server.URL, created.Code), "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]game.Phase
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, game.PhaseIdle, out["phase"])

	// Same code, blank session
	state := say(t, server, created.Code, "start")
	assert.Equal(t, game.PhaseRegistration, state.Phase)
}

func TestSessionQR(t *testing.T) {
	_, server := newTestServer(t)
	created := createSession(t, server)

	resp, err := http.Get(fmt.Sprintf("%s/session/%s/qr", server.URL, created.Code))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	magic := make([]byte, 8)
	_, err = resp.Body.Read(magic)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, magic)

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/session/XXXXX/qr")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	_, server := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
