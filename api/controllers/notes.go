package controllers

import (
	"net/http"

	"github.com/minicrmhq/minicrm-backend/api/responses"
	"github.com/minicrmhq/minicrm-backend/api/validators"
	"github.com/minicrmhq/minicrm-backend/internal/notes"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
)

type noteCreateRequest struct {
	Note string `json:"note" validate:"required,min=1,max=2000"`
}

// NoteCreate appends an interaction note to a customer.
func NoteCreate(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "note service unavailable"))
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

		var payload noteCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		note, err := svc.Add(r.Context(), storeID, customerID, payload.Note)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, note)
	}
}

// NoteList returns a customer's notes, newest first.
func NoteList(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "note service unavailable"))
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

		list, err := svc.ListByCustomer(r.Context(), storeID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
