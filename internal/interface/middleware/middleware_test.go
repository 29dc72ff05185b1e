package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier map[string]error

// Verify maps a token to its user id: "tok-<id>" is valid, anything in the
// map fails with the stored error.
func (f fakeVerifier) Verify(token string) (string, error) {
	if err, ok := f[token]; ok {
		return "", err
	}
	var id string
	if _, err := fmt.Sscanf(token, "tok-%s", &id); err != nil {
		return "", helpers.ErrInvalidToken
	}
	return id, nil
}

type fakeUsers map[string]*entity.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type envelope struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id"`
	Error     map[string]string `json:"error"`
}

func newEngine(development bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), ErrorHandler(discardLogger(), development), Recovery(), SecureHeaders())
	return r
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func authedEngine() *gin.Engine {
	users := fakeUsers{
		"owner":  {ID: "owner", Email: "o@x.dev", Role: entity.RoleOwner, PasswordHash: "secret"},
		"admin":  {ID: "admin", Email: "a@x.dev", Role: entity.RoleAdmin},
		"viewer": {ID: "viewer", Email: "v@x.dev", Role: entity.RoleViewer},
	}
	tokens := fakeVerifier{"expired": helpers.ErrExpiredToken}
	r := newEngine(true)
	auth := r.Group("/", Authenticate(users, tokens))
	auth.GET("/me", func(c *gin.Context) {
		u := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "hash": u.PasswordHash, "uid": c.GetString(CtxUserIDKey)})
	})
	auth.GET("/owner", RequireOwner(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	auth.GET("/staff", RequireOwnerOrAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func authReq(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticate(t *testing.T) {
	r := authedEngine()

	w, env := do(t, r, authReq("/me", ""))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "error", env.Status)
	require.Equal(t, "Not authorized to access this route, no token provided", env.Message)
	require.NotEmpty(t, env.RequestID)

	req := authReq("/me", "")
	req.Header.Set("Authorization", "Basic abc")
	w, env = do(t, r, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgNoToken, env.Message)

	w, env = do(t, r, authReq("/me", "garbage"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Not authorized to access this route, token failed", env.Message)

	w, env = do(t, r, authReq("/me", "expired"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgTokenExpiry, env.Message)

	// valid token for a user that no longer exists
	w, env = do(t, r, authReq("/me", "tok-ghost"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgTokenFailed, env.Message)

	w, _ = do(t, r, authReq("/me", "tok-owner"))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":"owner","hash":"","uid":"owner"}`, w.Body.String())
}

func TestRoleGates(t *testing.T) {
	r := authedEngine()
	cases := []struct {
		path, token string
		want        int
	}{
		{"/owner", "tok-owner", http.StatusNoContent},
		{"/owner", "tok-admin", http.StatusForbidden},
		{"/owner", "tok-viewer", http.StatusForbidden},
		{"/staff", "tok-owner", http.StatusNoContent},
		{"/staff", "tok-admin", http.StatusNoContent},
		{"/staff", "tok-viewer", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.path+"/"+tc.token, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, authReq(tc.path, tc.token))
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	r := newEngine(true)
	r.GET("/x", RequireOwner(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	w, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"apperror", apperror.Forbidden("nope"), http.StatusForbidden, "nope"},
		{"wrapped apperror", fmt.Errorf("ctx: %w", apperror.NotFound("gone")), http.StatusNotFound, "gone"},
		{"json", &json.SyntaxError{}, http.StatusBadRequest, "Invalid JSON payload"},
		{"empty body", io.EOF, http.StatusBadRequest, "Request body is required"},
		{"date", fmt.Errorf("%w \"yesterday\"", helpers.ErrInvalidDate), http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "Duplicate field value entered"},
		{"cast", &pgconn.PgError{Code: "22P02", ColumnName: "id"}, http.StatusBadRequest, "Invalid value for id"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{"conflict", fmt.Errorf("%w: users_email_key", repository.ErrConflict), http.StatusConflict, "Duplicate field value entered"},
		{"token", helpers.ErrInvalidToken, http.StatusUnauthorized, msgTokenFailed},
		{"other", errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.err)
			require.Equal(t, tc.status, got.Status)
			require.Equal(t, tc.message, got.Message)
		})
	}
}

func TestErrorHandlerMasksServerErrors(t *testing.T) {
	for _, dev := range []bool{true, false} {
		r := newEngine(dev)
		r.GET("/fail", func(c *gin.Context) { _ = c.Error(apperror.Upload("File upload failed", errors.New("bucket gone"))) })
		r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
		r.GET("/bad", func(c *gin.Context) {
			_ = c.Error(apperror.Validation("bad input").WithDetails(map[string]string{"title": "is required"}))
		})

		w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/fail", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		if dev {
			require.Equal(t, "File upload failed", env.Message)
		} else {
			require.Equal(t, "Internal Server Error", env.Message)
		}

		w, env = do(t, r, httptest.NewRequest(http.MethodGet, "/panic", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "error", env.Status)

		w, env = do(t, r, httptest.NewRequest(http.MethodGet, "/bad", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "bad input", env.Message)
		require.Equal(t, map[string]string{"title": "is required"}, env.Error)
	}
}

func TestSecureHeadersAndRequestID(t *testing.T) {
	r := newEngine(true)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "6f9619ff-8b86-d011-b42d-00cf4fc964ff")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", w.Body.String())
	require.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NotEqual(t, "not-a-uuid", w.Body.String())
	require.Len(t, w.Body.String(), 36)
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "203.0.113.7", w.Body.String())

	// a public peer cannot spoof its address
	req = httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "198.51.100.9:5555"
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "198.51.100.9", w.Body.String())
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := newEngine(true)
	r.GET("/x", RateLimit(nil, 1, 0, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(CtxRealIPKey, "192.168.1.4")
	require.True(t, allow(c))
	c.Set(CtxRealIPKey, "8.8.8.8")
	require.False(t, allow(c))
}
