package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/osse101/StardustBot_Go/internal/report"
)

// HandleMonthlyReport aggregates a calendar month's weekly records.
func HandleMonthlyReport(svc report.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID, ok := GetQueryParam(r, w, "guild_id")
		if !ok {
			return
		}
		month, ok := GetQueryInt(r, w, "month")
		if !ok {
			return
		}
		if month < 1 || month > 12 {
			http.Error(w, fmt.Sprintf(ErrMsgInvalidQueryParam, "month"), http.StatusBadRequest)
			return
		}
		year, ok := GetQueryInt(r, w, "year")
		if !ok {
			return
		}

		monthlyReport, err := svc.AggregateMonth(r.Context(), guildID, time.Month(month), year)
		if err != nil {
			respondServiceError(w, r, ErrMsgMonthlyFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, monthlyReport)
	}
}
