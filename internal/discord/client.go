package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

// APIClient handles communication with the Stardust core API. Every call is
// scoped to the guild the bot serves.
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
	GuildID string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey, guildID string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey:  apiKey,
		GuildID: guildID,
	}
}

// doRequest performs an HTTP request with retry logic
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	requestURL := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Retry configuration
	maxRetries := 3
	retryDelay := 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, requestURL, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// decodeOrError decodes a successful response into v, or surfaces the API's
// error message.
func decodeOrError(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError extracts the error message from a failed response
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("API error: %s", payload.Error)
	}
	return fmt.Errorf("API returned status: %d", resp.StatusCode)
}

// weekQuery builds the canonical guild/user/week query string.
func (c *APIClient) weekQuery(userID string, week, year int) string {
	q := url.Values{}
	q.Set("guild_id", c.GuildID)
	if userID != "" {
		q.Set("user_id", userID)
	}
	if week > 0 {
		q.Set("week", strconv.Itoa(week))
		q.Set("year", strconv.Itoa(year))
	}
	return q.Encode()
}

// GetWeeklyPoints fetches one moderator's weekly record.
func (c *APIClient) GetWeeklyPoints(userID string, week, year int) (*domain.WeeklyPointsRecord, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/points?"+c.weekQuery(userID, week, year), nil)
	if err != nil {
		return nil, err
	}

	var record domain.WeeklyPointsRecord
	if err := decodeOrError(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Preview runs the what-if calculator.
func (c *APIClient) Preview(metrics domain.RawMetrics) (*domain.Computation, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/calculator", metrics)
	if err != nil {
		return nil, err
	}

	var computation domain.Computation
	if err := decodeOrError(resp, &computation); err != nil {
		return nil, err
	}
	return &computation, nil
}

// GetProfile fetches a moderator's combined profile.
func (c *APIClient) GetProfile(userID string) (*domain.ModeratorProfile, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/moderators/profile?"+c.weekQuery(userID, 0, 0), nil)
	if err != nil {
		return nil, err
	}

	var profile domain.ModeratorProfile
	if err := decodeOrError(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListModerators fetches every enrollment for the guild.
func (c *APIClient) ListModerators() ([]domain.Enrollment, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/moderators?"+c.weekQuery("", 0, 0), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []domain.Enrollment `json:"data"`
	}
	if err := decodeOrError(resp, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// Activate enrolls a moderator.
func (c *APIClient) Activate(userID, actorID string) error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/moderators/activate", map[string]string{
		"guild_id": c.GuildID,
		"user_id":  userID,
		"actor_id": actorID,
	})
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// Deactivate removes a moderator from the program.
func (c *APIClient) Deactivate(userID, actorID string) error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/moderators/deactivate", map[string]string{
		"guild_id": c.GuildID,
		"user_id":  userID,
		"actor_id": actorID,
	})
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// TierInfo is the core API's tier read model.
type TierInfo struct {
	Tier   int `json:"tier"`
	Payout int `json:"payout"`
}

// GetTier fetches a moderator's current tier and payout.
func (c *APIClient) GetTier(userID string) (*TierInfo, error) {
	resp, err := c.doRequest(http.MethodGet, "/api/v1/tiers/current?"+c.weekQuery(userID, 0, 0), nil)
	if err != nil {
		return nil, err
	}

	var info TierInfo
	if err := decodeOrError(resp, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetTier assigns a moderator's tier.
func (c *APIClient) SetTier(userID string, tierLevel int, actorID string) error {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/tiers/set", map[string]interface{}{
		"guild_id": c.GuildID,
		"user_id":  userID,
		"tier":     tierLevel,
		"actor_id": actorID,
	})
	if err != nil {
		return err
	}
	return decodeOrError(resp, nil)
}

// SetOverride replaces a weekly record's finalized points. Passing -1
// clears an existing override.
func (c *APIClient) SetOverride(userID string, week, year int, points float64, reason, actorID string) (*domain.WeeklyPointsRecord, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/points/override", map[string]interface{}{
		"guild_id":         c.GuildID,
		"user_id":          userID,
		"week":             week,
		"year":             year,
		"finalized_points": points,
		"reason":           reason,
		"applied_by_id":    actorID,
	})
	if err != nil {
		return nil, err
	}

	var record domain.WeeklyPointsRecord
	if err := decodeOrError(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ProcessWeek recomputes one week for every active moderator.
func (c *APIClient) ProcessWeek(week, year int) (int, error) {
	resp, err := c.doRequest(http.MethodPost, "/api/v1/points/process-week", map[string]interface{}{
		"guild_id": c.GuildID,
		"week":     week,
		"year":     year,
	})
	if err != nil {
		return 0, err
	}

	var payload struct {
		Processed int `json:"processed"`
	}
	if err := decodeOrError(resp, &payload); err != nil {
		return 0, err
	}
	return payload.Processed, nil
}

// ClearWeek deletes every record for one week and returns the count.
func (c *APIClient) ClearWeek(week, year int) (int64, error) {
	resp, err := c.doRequest(http.MethodDelete, "/api/v1/points/week?"+c.weekQuery("", week, year), nil)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Deleted int64 `json:"deleted"`
	}
	if err := decodeOrError(resp, &payload); err != nil {
		return 0, err
	}
	return payload.Deleted, nil
}

// MonthlyReport fetches the aggregated report for a month.
func (c *APIClient) MonthlyReport(month, year int) (*domain.MonthlyReport, error) {
	q := url.Values{}
	q.Set("guild_id", c.GuildID)
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))

	resp, err := c.doRequest(http.MethodGet, "/api/v1/reports/monthly?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var monthlyReport domain.MonthlyReport
	if err := decodeOrError(resp, &monthlyReport); err != nil {
		return nil, err
	}
	return &monthlyReport, nil
}
