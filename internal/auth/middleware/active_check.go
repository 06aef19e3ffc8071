package auth

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/autocheck-dev/autocheck/internal/rbac"
)

// RequireActiveMechanic rejects mechanic tokens whose account has been
// deactivated since the token was issued. Admin tokens pass through.
func RequireActiveMechanic(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if rbac.RoleFromContext(ctx) != "mechanic" {
				next.ServeHTTP(w, r)
				return
			}
			sub := SubjectFromContext(ctx)

			var active bool
			err := db.QueryRowContext(ctx,
				`SELECT is_active FROM mechanics WHERE id=$1`, sub).Scan(&active)
			switch {
			case err == nil && active:
				next.ServeHTTP(w, r)
			case errors.Is(err, sql.ErrNoRows) || (err == nil && !active):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
