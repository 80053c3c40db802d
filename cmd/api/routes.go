// AngelaMos | 2026
// routes.go

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raj-p26/inklink-backend/internal/admin"
	"github.com/raj-p26/inklink-backend/internal/article"
	"github.com/raj-p26/inklink-backend/internal/auth"
	"github.com/raj-p26/inklink-backend/internal/user"
)

type apiRoutes struct {
	Auth     *auth.Handler
	Users    *user.Handler
	Articles *article.Handler
	Admin    *admin.Handler

	Authenticator func(http.Handler) http.Handler
	AdminOnly     func(http.Handler) http.Handler
	AuthLimit     func(http.Handler) http.Handler
	WriteLimit    func(http.Handler) http.Handler
}

// mountV1 builds the /v1 tree. Order matters: the POST /users signup alias
// must come after the /users subrouter, which otherwise claims every
// method on that path.
func mountV1(router chi.Router, rt apiRoutes) {
	router.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.AuthLimit)
			rt.Auth.RegisterRoutes(r, rt.Authenticator)
		})

		rt.Articles.RegisterRoutes(r, rt.Authenticator, rt.WriteLimit)
		rt.Users.RegisterRoutes(r, rt.Authenticator)

		r.With(rt.AuthLimit).Post("/users", rt.Auth.Register)

		rt.Users.RegisterAdminRoutes(r, rt.Authenticator, rt.AdminOnly)
		rt.Admin.RegisterRoutes(r, rt.Authenticator, rt.AdminOnly)
	})
}
