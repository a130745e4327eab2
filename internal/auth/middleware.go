package auth

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

// Middleware rejects requests without a valid bearer token and stores the
// token subject as the request owner.
func Middleware(v *Verifier, onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				onError(w, r, ErrMissingToken)
				return
			}

			ownerID, err := v.Verify(token)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := WithOwner(r.Context(), ownerID)

			log := logger.FromContext(ctx, logger.Nop())
			ctx = logger.WithContext(ctx, log.With().Str("owner", ownerID).Logger())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
