package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
)

// ParseQueryDate reads a YYYY-MM-DD query parameter. A missing parameter
// returns the fallback.
func ParseQueryDate(r *http.Request, key string, fallback dbtypes.Date) (dbtypes.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	date, err := dbtypes.ParseDate(raw)
	if err != nil {
		return dbtypes.Date{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": key})
	}
	return date, nil
}

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a UUID").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
