package controllers

import (
	"net/http"

	"github.com/minicrmhq/minicrm-backend/api/responses"
	"github.com/minicrmhq/minicrm-backend/api/validators"
	"github.com/minicrmhq/minicrm-backend/internal/funnel"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
)

type funnelSetRequest struct {
	Stage string  `json:"stage" validate:"required,oneof=new in_progress completed"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// FunnelSet moves a customer to the requested funnel stage.
func FunnelSet(svc funnel.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "funnel service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload funnelSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.SetStage(r.Context(), storeID, customerID, funnel.SetStageInput{
			Stage: payload.Stage,
			Notes: payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}

// FunnelGet reports the customer's current stage, defaulting to new.
func FunnelGet(svc funnel.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "funnel service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.GetStatus(r.Context(), storeID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
