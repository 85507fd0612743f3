package discord

import (
	"net/http"
	"testing"

	"github.com/osse101/StardustBot_Go/internal/domain"
)

func TestGetWeeklyPoints(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/points", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("guild_id") != "guild-1" {
			t.Errorf("Expected guild_id=guild-1, got %s", r.URL.Query().Get("guild_id"))
		}
		if r.URL.Query().Get("week") != "12" {
			t.Errorf("Expected week=12, got %s", r.URL.Query().Get("week"))
		}
		WriteJSON(w, domain.WeeklyPointsRecord{
			GuildID:              "guild-1",
			UserID:               "user-1",
			Week:                 12,
			Year:                 2026,
			TotalFinalizedPoints: 42.5,
		})
	})

	record, err := ctx.APIClient.GetWeeklyPoints("user-1", 12, 2026)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if record.EffectiveFinalizedPoints() != 42.5 {
		t.Errorf("Expected 42.5 finalized points, got %f", record.EffectiveFinalizedPoints())
	}
}

func TestGetWeeklyPointsNotFound(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/points", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No weekly points record exists for that week."}`))
	})

	_, err := ctx.APIClient.GetWeeklyPoints("user-1", 12, 2026)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if formatFriendlyError(err.Error()) != MsgRecordNotFound {
		t.Errorf("Expected friendly not-found message, got %q", formatFriendlyError(err.Error()))
	}
}

func TestPreview(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/calculator", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		WriteJSON(w, domain.Computation{
			TotalRawPoints:       105,
			TotalFinalizedPoints: 95,
			TotalWastedPoints:    10,
		})
	})

	computation, err := ctx.APIClient.Preview(domain.RawMetrics{ModChatMessages: 100, ModActionsTaken: 5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if computation.TotalFinalizedPoints != 95 {
		t.Errorf("Expected 95 finalized, got %f", computation.TotalFinalizedPoints)
	}
}

func TestListModerators(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/moderators", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{
			"data": []domain.Enrollment{
				{GuildID: "guild-1", UserID: "user-1", Active: true},
				{GuildID: "guild-1", UserID: "user-2", Active: true},
			},
		})
	})

	moderators, err := ctx.APIClient.ListModerators()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(moderators) != 2 {
		t.Fatalf("Expected 2 moderators, got %d", len(moderators))
	}
	if moderators[0].UserID != "user-1" {
		t.Errorf("Expected user-1 first, got %s", moderators[0].UserID)
	}
}

func TestProcessWeek(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/points/process-week", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, map[string]interface{}{"message": "ok", "processed": 7})
	})

	processed, err := ctx.APIClient.ProcessWeek(12, 2026)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if processed != 7 {
		t.Errorf("Expected 7 processed, got %d", processed)
	}
}

func TestClearWeek(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/points/week", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		WriteJSON(w, map[string]interface{}{"message": "ok", "deleted": 4})
	})

	deleted, err := ctx.APIClient.ClearWeek(12, 2026)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if deleted != 4 {
		t.Errorf("Expected 4 deleted, got %d", deleted)
	}
}
