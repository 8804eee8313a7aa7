// handlers/analytics_handler.go
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
	"github.com/SajeedAninda/Sovereign-Assets-Server/utils"
)

// AnalyticsHandler owns the admin dashboard numbers.
type AnalyticsHandler struct {
	Requests store.RequestStore
	Activity store.ActivityStore
	Logger   *zap.Logger
}

const mostRequestedLimit = 4

// MostRequested ranks a company's assets by request frequency, top 4,
// each entry carrying one representative request document.
func (h *AnalyticsHandler) MostRequested(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	counts, err := h.Requests.MostRequested(r.Context(), company, mostRequestedLimit)
	if err != nil {
		h.Logger.Error("most requested query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, counts)
}

// typeShare is the returnable / non-returnable split as percentages.
type typeShare struct {
	Returnable    float64 `json:"returnable"`
	NonReturnable float64 `json:"nonReturnable"`
}

// AssetTypeShare computes the share of requests targeting returnable
// assets for one admin. Zero requests yields a defined zero pair, never a
// division by zero.
func (h *AnalyticsHandler) AssetTypeShare(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	returnable, total, err := h.Requests.CountByType(r.Context(), email)
	if err != nil {
		h.Logger.Error("type share query failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, computeTypeShare(returnable, total))
}

func computeTypeShare(returnable, total int64) typeShare {
	if total == 0 {
		return typeShare{}
	}
	pct := float64(returnable) / float64(total) * 100
	return typeShare{
		Returnable:    pct,
		NonReturnable: 100 - pct,
	}
}

const activityListLimit = 50

// RecentActivity lists a company's newest activity entries.
func (h *AnalyticsHandler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "company required")
		return
	}

	entries, err := h.Activity.ListByCompany(r.Context(), company, activityListLimit)
	if err != nil {
		h.Logger.Error("activity list failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, entries)
}
