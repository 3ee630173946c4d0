package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type callerKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// token's user.Caller on the request context. It must run after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			caller, ok := callerFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		}
		return http.HandlerFunc(hfn)
	}
}

func callerFromClaims(claims map[string]interface{}) (user.Caller, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Caller{}, false
	}
	role, ok := claims["role"].(string)
	if !ok || !user.Role(role).Valid() {
		return user.Caller{}, false
	}
	loginID, _ := claims["login_id"].(string)

	return user.Caller{UserID: userID, LoginID: loginID, Role: user.Role(role)}, true
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller user.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(ctx context.Context) (user.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(user.Caller)
	return caller, ok
}
