package handler

import (
	"net/http"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/stardust"
)

// PreviewRequest carries hypothetical activity counts for the calculator.
// Counts default to zero when omitted.
type PreviewRequest struct {
	ModChatMessages    int `json:"mod_chat_messages" validate:"min=0"`
	PublicChatMessages int `json:"public_chat_messages" validate:"min=0"`
	VoiceChatMinutes   int `json:"voice_chat_minutes" validate:"min=0"`
	ModActionsTaken    int `json:"mod_actions_taken" validate:"min=0"`
	CasesHandled       int `json:"cases_handled" validate:"min=0"`
}

// HandlePreview runs the points calculator without touching any store.
func HandlePreview(svc stardust.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Preview"); err != nil {
			return
		}

		computation := svc.Preview(domain.RawMetrics{
			ModChatMessages:    req.ModChatMessages,
			PublicChatMessages: req.PublicChatMessages,
			VoiceChatMinutes:   req.VoiceChatMinutes,
			ModActionsTaken:    req.ModActionsTaken,
			CasesHandled:       req.CasesHandled,
		})

		respondJSON(w, http.StatusOK, computation)
	}
}
