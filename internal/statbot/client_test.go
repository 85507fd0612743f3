package statbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key", WithHTTPClient(server.Client()))
	client.sleep = func(time.Duration) {}
	return client, server
}

func testQuery() ChannelQuery {
	return ChannelQuery{
		GuildID:    "guild-1",
		UserID:     "mod-1",
		Week:       10,
		Year:       2026,
		ChannelIDs: []string{"chan-1", "chan-2"},
	}
}

func TestFetchModChatMessageCount(t *testing.T) {
	var gotPath string
	var gotAuth string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"count": 40, "unixTimestamp": 1}, {"count": 2, "unixTimestamp": 2}]`))
	}))

	total, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	assert.Equal(t, "/guilds/guild-1/messages/series", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"mod-1"}, gotQuery[ParamWhitelistMembers])
	assert.Equal(t, []string{"chan-1", "chan-2"}, gotQuery[ParamWhitelistChannels])
	assert.Equal(t, []string{IntervalWeek}, gotQuery[ParamInterval])
}

func TestFetchPublicChatBlacklistsChannels(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))

	total, err := client.FetchPublicChatMessageCount(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Equal(t, []string{"chan-1", "chan-2"}, gotQuery[ParamBlacklistChannels])
	assert.Empty(t, gotQuery[ParamWhitelistChannels])
}

func TestFetchVoiceMinutesFiltersState(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"count": 95, "unixTimestamp": 1}]`))
	}))

	total, err := client.FetchVoiceMinutes(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Equal(t, 95, total)
	assert.Equal(t, "/guilds/guild-1/voice/series", gotPath)
	assert.Equal(t, []string{VoiceStateNormal}, gotQuery[ParamVoiceStates])
}

func TestRetryOn429(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[{"count": 7, "unixTimestamp": 1}]`))
	}))

	total, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.Error(t, err)
	assert.Equal(t, int32(DefaultMaxRetries+1), calls.Load())
}

func TestBadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode": 400, "error": "Bad Request", "message": "invalid interval"}`))
	}))

	_, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid interval")
	assert.Equal(t, int32(1), calls.Load())
}

func TestAPIErrorMessage(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{"string error with message", `{"error": "Bad Request", "message": "invalid interval"}`, "invalid interval"},
		{"string error only", `{"error": "Forbidden"}`, "Forbidden"},
		{"nested error object", `{"error": {"message": "quota exceeded"}}`, "quota exceeded"},
		{"empty body", ``, "no details provided"},
		{"not json", `<html>502</html>`, "no details provided"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apiErrorMessage(strings.NewReader(tc.body)))
		})
	}
}

func TestRateLimitStateTracked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "12")
		w.Header().Set("X-RateLimit-Reset", "30")
		w.Write([]byte(`[]`))
	}))

	_, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.NoError(t, err)

	state := client.RateLimit()
	assert.Equal(t, 60, state.Limit)
	assert.Equal(t, 12, state.Remaining)
	assert.False(t, state.ResetAt.IsZero())
}

func TestServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"count": 3, "unixTimestamp": 1}]`))
	}))

	total, err := client.FetchModChatMessageCount(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
