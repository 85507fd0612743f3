package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// TestContext wires a mock backend, a guild-scoped APIClient and a Discord
// session whose HTTP transport is intercepted.
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *APIClient
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
}

func SetupTestContext(t *testing.T) *TestContext {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	client := NewAPIClient(server.URL, "test-api-key", "guild-1")

	session, _ := discordgo.New("Bot test-token")

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     make(http.Header),
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	t.Cleanup(func() {
		server.Close()
	})

	return ctx
}

// Helper to return JSON success
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}
