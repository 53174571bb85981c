package controllers

import (
	"net/http"

	"github.com/minicrmhq/minicrm-backend/api/responses"
	"github.com/minicrmhq/minicrm-backend/api/validators"
	"github.com/minicrmhq/minicrm-backend/internal/customers"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
)

type customerCreateRequest struct {
	Name            string        `json:"name" validate:"required,min=1,max=200"`
	WhatsappNumber  string        `json:"whatsapp_number" validate:"required,min=5,max=30"`
	Email           *string       `json:"email,omitempty" validate:"omitempty,email"`
	ProductInterest *string       `json:"product_interest,omitempty"`
	Stage           string        `json:"stage,omitempty" validate:"omitempty,oneof=new in_progress completed"`
	FunnelNotes     *string       `json:"funnel_notes,omitempty"`
	Tags            []string      `json:"tags,omitempty"`
	InitialNote     *string       `json:"initial_note,omitempty"`
	ReminderDate    *dbtypes.Date `json:"reminder_date,omitempty"`
	ReminderMessage string        `json:"reminder_message,omitempty"`
}

func (r customerCreateRequest) toInput() customers.CreateCustomerInput {
	return customers.CreateCustomerInput{
		Name:            r.Name,
		WhatsappNumber:  r.WhatsappNumber,
		Email:           r.Email,
		ProductInterest: r.ProductInterest,
		Stage:           r.Stage,
		FunnelNotes:     r.FunnelNotes,
		Tags:            r.Tags,
		InitialNote:     r.InitialNote,
		ReminderDate:    r.ReminderDate,
		ReminderMessage: r.ReminderMessage,
	}
}

// CustomerCreate registers a customer plus its optional follow-up records.
// When a follow-up record fails the customer is still created; the error
// response carries its id so the client can retry the rest.
func CustomerCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload customerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CustomerList returns the store's customers, optionally filtered by search
// term, funnel stage and tag.
func CustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		filter := customers.ListFilter{
			SearchTerm: query.Get("search"),
			Stage:      query.Get("stage"),
			Tag:        query.Get("tag"),
		}

		list, err := svc.List(r.Context(), storeID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CustomerGet loads one customer enriched with stage and tags.
func CustomerGet(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
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

		dto, err := svc.Get(r.Context(), storeID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
