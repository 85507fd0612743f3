package handler

import (
	"net/http"

	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/stardust"
	"github.com/osse101/StardustBot_Go/internal/tier"
)

// SetTierRequest assigns a moderator's tier directly.
type SetTierRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Tier    *int   `json:"tier" validate:"required"`
	ActorID string `json:"actor_id" validate:"required"`
}

// CurrentTierResponse reports a moderator's tier and its payout.
type CurrentTierResponse struct {
	Tier   int `json:"tier"`
	Payout int `json:"payout"`
}

// AdjustTiersRequest runs the opt-in promotion/demotion policy for a week.
type AdjustTiersRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	Week    int    `json:"week" validate:"required,isoweek"`
	Year    int    `json:"year" validate:"required,min=2015,max=2100"`
}

// AdjustTiersResponse reports how many tiers the policy changed.
type AdjustTiersResponse struct {
	Message  string `json:"message"`
	Adjusted int    `json:"adjusted"`
}

// HandleSetTier assigns a moderator's tier.
func HandleSetTier(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetTierRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set tier"); err != nil {
			return
		}

		if err := svc.SetTier(r.Context(), req.GuildID, req.UserID, *req.Tier, req.ActorID); err != nil {
			respondServiceError(w, r, ErrMsgTierFailed, err)
			return
		}

		log.Info("Tier assigned", "guild_id", req.GuildID, "user_id", req.UserID, "tier", *req.Tier, "actor_id", req.ActorID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Tier assigned"})
	}
}

// HandleGetTier returns a moderator's current tier and payout.
func HandleGetTier(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		current, err := svc.CurrentTier(r.Context(), guildID, userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgTierFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, CurrentTierResponse{
			Tier:   current,
			Payout: tier.PayoutFor(current),
		})
	}
}

// HandleListTiers lists every tracked tier status for a guild.
func HandleListTiers(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}

		statuses, err := svc.ListTiers(r.Context(), guildID)
		if err != nil {
			respondServiceError(w, r, ErrMsgTierFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: statuses})
	}
}

// HandleListPayouts returns the tier payout table.
func HandleListPayouts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: tier.Payouts})
	}
}

// HandleAdjustTiers applies the automatic tier adjustment policy.
func HandleAdjustTiers(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdjustTiersRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Adjust tiers"); err != nil {
			return
		}

		adjusted, err := svc.AdjustTiers(r.Context(), req.GuildID, req.Week, req.Year)
		if err != nil {
			respondServiceError(w, r, ErrMsgAdjustTiersFailed, err)
			return
		}

		log.Info("Tiers adjusted", "guild_id", req.GuildID, "week", req.Week, "year", req.Year, "adjusted", adjusted)
		respondJSON(w, http.StatusOK, AdjustTiersResponse{
			Message:  "Tiers adjusted",
			Adjusted: adjusted,
		})
	}
}
