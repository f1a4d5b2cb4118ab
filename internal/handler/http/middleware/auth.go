package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type employeeKey struct{}

// AuthRequired admits access tokens that carry an employee_id claim and
// stores the employee on the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, jwt.ErrInvalidToken)
				return
			}

			employeeID, err := jwt.EmployeeID(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), employeeKey{}, employeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeID returns the employee admitted by AuthRequired.
func EmployeeID(ctx context.Context) string {
	id, _ := ctx.Value(employeeKey{}).(string)
	return id
}
