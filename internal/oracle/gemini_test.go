package oracle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisphq/crisp-backend/internal/oracle"
)

func geminiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, ":generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Contains(t, req, "contents")

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGemini_Generate(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{
		"candidates": [{"content": {"parts": [{"text": "hello from the model"}]}}]
	}`)
	defer srv.Close()

	g := oracle.NewGemini("test-key", "gemini-2.0-flash", srv.URL)
	text, err := g.Generate(context.Background(), oracle.GenerateRequest{Prompt: "say hello"})
	require.NoError(t, err)
	require.Equal(t, "hello from the model", text)
}

func TestGemini_Generate_Errors(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
	}{
		"http error":       {http.StatusTooManyRequests, `{"error": {"code": 429, "message": "quota"}}`},
		"api error body":   {http.StatusOK, `{"error": {"code": 400, "message": "bad prompt"}}`},
		"empty candidates": {http.StatusOK, `{"candidates": []}`},
		"malformed body":   {http.StatusOK, `{{{`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := geminiServer(t, tc.status, tc.body)
			defer srv.Close()

			g := oracle.NewGemini("test-key", "gemini-2.0-flash", srv.URL)
			_, err := g.Generate(context.Background(), oracle.GenerateRequest{Prompt: "p"})
			require.Error(t, err)
		})
	}
}

func TestGemini_Generate_MissingAPIKey(t *testing.T) {
	g := oracle.NewGemini("", "gemini-2.0-flash", "http://localhost:0")
	_, err := g.Generate(context.Background(), oracle.GenerateRequest{Prompt: "p"})
	require.Error(t, err)
}
