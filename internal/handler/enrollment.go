package handler

import (
	"net/http"

	"github.com/osse101/StardustBot_Go/internal/logger"
	"github.com/osse101/StardustBot_Go/internal/stardust"
)

// EnrollmentRequest activates or deactivates one moderator.
type EnrollmentRequest struct {
	GuildID string `json:"guild_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	ActorID string `json:"actor_id" validate:"required"`
}

// HandleActivate enrolls a moderator, or reactivates a past enrollment.
func HandleActivate(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EnrollmentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Activate enrollment"); err != nil {
			return
		}

		if err := svc.Activate(r.Context(), req.GuildID, req.UserID, req.ActorID); err != nil {
			respondServiceError(w, r, ErrMsgEnrollmentFailed, err)
			return
		}

		log.Info("Moderator enrolled", "guild_id", req.GuildID, "user_id", req.UserID, "actor_id", req.ActorID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Moderator enrolled"})
	}
}

// HandleDeactivate removes a moderator from the program. Enrollments with no
// weekly history are deleted outright; the rest are marked inactive.
func HandleDeactivate(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EnrollmentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Deactivate enrollment"); err != nil {
			return
		}

		if err := svc.Deactivate(r.Context(), req.GuildID, req.UserID, req.ActorID); err != nil {
			respondServiceError(w, r, ErrMsgEnrollmentFailed, err)
			return
		}

		log.Info("Moderator deactivated", "guild_id", req.GuildID, "user_id", req.UserID, "actor_id", req.ActorID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Moderator deactivated"})
	}
}

// HandleListModerators lists every enrollment for a guild.
func HandleListModerators(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}

		enrollments, err := svc.ListModerators(r.Context(), guildID)
		if err != nil {
			respondServiceError(w, r, ErrMsgEnrollmentFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: enrollments})
	}
}

// HandleGetProfile returns one moderator's enrollment, tier and recent weeks.
func HandleGetProfile(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		profile, err := svc.GetProfile(r.Context(), guildID, userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgEnrollmentFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
