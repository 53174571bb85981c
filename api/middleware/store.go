package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/minicrmhq/minicrm-backend/api/responses"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
)

// StoreHeader is set by the authenticating gateway in front of this service.
const StoreHeader = "X-Store-ID"

// StoreIdentity reads the store id forwarded by the gateway and injects it
// into the request context and log fields. Requests without a parseable
// store id pass through untouched; StoreContext rejects them later where a
// store is actually required.
func StoreIdentity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(StoreHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			storeID, err := uuid.Parse(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithStoreID(r.Context(), storeID.String())
			if logg != nil {
				ctx = logg.WithStoreID(ctx, storeID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreContext rejects requests that reached a store-scoped route without a
// store identity.
func StoreContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if StoreIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
