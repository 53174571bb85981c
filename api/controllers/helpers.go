package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/api/middleware"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
)

// storeIDFromRequest extracts the authenticated store identity placed in the
// context by the middleware chain.
func storeIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.StoreIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	return id, nil
}
