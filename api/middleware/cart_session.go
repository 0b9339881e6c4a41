package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/slicehaus/slicehaus-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession resolves the cart owner for the request. Anonymous
// shoppers get a fresh session id minted on first contact; the header
// is echoed back so the client can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := r.Header.Get(cartSessionHeader)
			if ownerID == "" {
				ownerID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, ownerID)

			ctx := context.WithValue(r.Context(), ctxCartOwner, ownerID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, ownerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
