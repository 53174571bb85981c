package controllers

import (
	"net/http"

	"github.com/minicrmhq/minicrm-backend/api/responses"
	"github.com/minicrmhq/minicrm-backend/internal/dashboard"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
)

// DashboardStats returns the store overview: customer counts, upcoming
// reminders, loyalty points and the day's message.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
