// AngelaMos | 2026
// routes_test.go

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raj-p26/inklink-backend/internal/admin"
	"github.com/raj-p26/inklink-backend/internal/article"
	"github.com/raj-p26/inklink-backend/internal/auth"
	"github.com/raj-p26/inklink-backend/internal/config"
	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/user"
)

func passthrough(next http.Handler) http.Handler { return next }

func newV1Router(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	sdb := sqlx.NewDb(db, "pgx")

	hasher := core.NewPasswordHasherWithParams(core.Argon2Params{
		Memory: 1024, Time: 1, Threads: 1, KeyLen: 32,
	})
	tokens, err := auth.NewTokenService(config.JWTConfig{
		Secret:          "routes-test-secret-at-least-32-bytes",
		TokenTTLMinutes: 64,
		Issuer:          "inklink",
	})
	require.NoError(t, err)

	userSvc := user.NewService(user.NewRepository(sdb), hasher)
	articleSvc := article.NewService(article.NewRepository(sdb))

	router := chi.NewRouter()
	mountV1(router, apiRoutes{
		Auth:          auth.NewHandler(auth.NewService(tokens, userSvc, hasher), auth.CookieConfig{}),
		Users:         user.NewHandler(userSvc, articleSvc),
		Articles:      article.NewHandler(articleSvc),
		Admin:         admin.NewHandler(admin.HandlerConfig{}),
		Authenticator: passthrough,
		AdminOnly:     passthrough,
		AuthLimit:     passthrough,
		WriteLimit:    passthrough,
	})

	return router, mock
}

func TestMountV1_UsersPostIsSignup(t *testing.T) {
	router, mock := newV1Router(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", "ada", "ada@example.com",
			sqlmock.AnyArg(), "", user.RoleUser, user.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"registration_date", "last_login_date"}).
			AddRow(now, nil))

	body, err := json.Marshal(auth.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "analytical-engine",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/users", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data auth.AuthResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ada@example.com", resp.Data.User.Email)
	assert.NotEmpty(t, resp.Data.Token.AccessToken)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestMountV1_UsersSubrouterStillServed(t *testing.T) {
	router, mock := newV1Router(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/ghost/articles", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
