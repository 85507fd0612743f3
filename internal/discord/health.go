package discord

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
	APIReachable     bool      `json:"api_reachable"`
}

var (
	startTime      = time.Now()
	commandCounter int64

	lastCommandMu   sync.Mutex
	lastCommandTime time.Time
)

// RecordCommand increments the command counter
func RecordCommand() {
	atomic.AddInt64(&commandCounter, 1)
	lastCommandMu.Lock()
	lastCommandTime = time.Now()
	lastCommandMu.Unlock()
}

// HandleHealth returns the bot's health status
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Session != nil && h.bot.Session.DataReady

	apiReachable := false
	if h.bot.Client != nil {
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.bot.Client.BaseURL+"/healthz", nil)
		if err == nil {
			resp, err := h.bot.Client.Client.Do(req)
			if err == nil {
				apiReachable = resp.StatusCode == http.StatusOK
				resp.Body.Close()
			}
		}
	}

	status := "healthy"
	if !connected || !apiReachable {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	lastCommandMu.Lock()
	lastCommand := lastCommandTime
	lastCommandMu.Unlock()

	health := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).String(),
		Connected:        connected,
		CommandsReceived: atomic.LoadInt64(&commandCounter),
		LastCommandTime:  lastCommand,
		APIReachable:     apiReachable,
	}

	w.Header().Set("Content-Type", "application/json")
	// Headers are already sent, nothing useful to do on encode failure
	_ = json.NewEncoder(w).Encode(health)
}
