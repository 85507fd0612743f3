package handler

import (
	"net/http"

	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/stardust"
)

// ProcessModeratorRequest asks for one moderator's week to be computed.
type ProcessModeratorRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Week    int    `json:"week" validate:"required,isoweek"`
	Year    int    `json:"year" validate:"required,min=2015,max=2100"`
}

// ProcessWeekRequest asks for every active moderator's week to be computed.
type ProcessWeekRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Week    int    `json:"week" validate:"required,isoweek"`
	Year    int    `json:"year" validate:"required,min=2015,max=2100"`
}

// ProcessWeekResponse reports how many moderators were processed.
type ProcessWeekResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

// BackfillRequest asks for missing past weeks to be filled in.
type BackfillRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
}

// BackfillResponse reports how many weeks were filled.
type BackfillResponse struct {
	Message     string `json:"message"`
	WeeksFilled int    `json:"weeks_filled"`
}

// OverrideRequest replaces a record's finalized points. A finalized_points
// of -1 clears an existing override instead.
type OverrideRequest struct {
	GuildID         string   `json:"guild_id" validate:"required"`
	UserID          string   `json:"user_id" validate:"required"`
	Week            int      `json:"week" validate:"required,isoweek"`
	Year            int      `json:"year" validate:"required,min=2015,max=2100"`
	FinalizedPoints *float64 `json:"finalized_points" validate:"required"`
	Reason          string   `json:"reason" validate:"required,max=500"`
	AppliedByID     string   `json:"applied_by_id" validate:"required"`
}

// ClearWeekResponse reports how many records a bulk delete removed.
type ClearWeekResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// HandleGetWeekly returns the stored weekly record for one moderator.
func HandleGetWeekly(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		weekNum, ok := GetQueryInt(r, w, "week")
		if !ok {
			return
		}
		year, ok := GetQueryInt(r, w, "year")
		if !ok {
			return
		}

		record, err := svc.GetWeekly(r.Context(), guildID, userID, weekNum, year)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetWeeklyFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}

// HandleProcessModerator computes and stores one moderator's week.
func HandleProcessModerator(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProcessModeratorRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Process moderator"); err != nil {
			return
		}

		record, err := svc.ProcessModerator(r.Context(), req.GuildID, req.UserID, req.Week, req.Year)
		if err != nil {
			respondServiceError(w, r, ErrMsgProcessFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}

// HandleProcessWeek computes and stores the week for every active moderator.
func HandleProcessWeek(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ProcessWeekRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Process week"); err != nil {
			return
		}

		processed, err := svc.ProcessWeek(r.Context(), req.GuildID, req.Week, req.Year)
		if err != nil {
			respondServiceError(w, r, ErrMsgProcessFailed, err)
			return
		}

		log.Info("Week processed", "guild_id", req.GuildID, "week", req.Week, "year", req.Year, "processed", processed)
		respondJSON(w, http.StatusOK, ProcessWeekResponse{
			Message:   "Week processed",
			Processed: processed,
		})
	}
}

// HandleBackfill fills past weeks that have no records.
func HandleBackfill(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BackfillRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Backfill"); err != nil {
			return
		}

		filled, err := svc.ProcessBackfill(r.Context(), req.GuildID)
		if err != nil {
			respondServiceError(w, r, ErrMsgBackfillFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, BackfillResponse{
			Message:     "Backfill complete",
			WeeksFilled: filled,
		})
	}
}

// HandleSetOverride applies or clears an administrative override.
func HandleSetOverride(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OverrideRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set override"); err != nil {
			return
		}

		record, err := svc.SetOverride(r.Context(), req.GuildID, req.UserID, req.Week, req.Year, *req.FinalizedPoints, req.Reason, req.AppliedByID)
		if err != nil {
			respondServiceError(w, r, ErrMsgOverrideFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, record)
	}
}

// HandleClearWeek bulk-deletes every record for one (guild, week, year).
func HandleClearWeek(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		weekNum, ok := GetQueryInt(r, w, "week")
		if !ok {
			return
		}
		year, ok := GetQueryInt(r, w, "year")
		if !ok {
			return
		}

		deleted, err := svc.ClearWeek(r.Context(), guildID, weekNum, year)
		if err != nil {
			respondServiceError(w, r, ErrMsgClearWeekFailed, err)
			return
		}

		log.Info("Week cleared", "guild_id", guildID, "week", weekNum, "year", year, "deleted", deleted)
		respondJSON(w, http.StatusOK, ClearWeekResponse{
			Message: "Week cleared",
			Deleted: deleted,
		})
	}
}
