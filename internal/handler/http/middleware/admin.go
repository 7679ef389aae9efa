package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to HR / payroll staff.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := user.ActorFromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		if !actor.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
