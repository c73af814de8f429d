package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

type fakeUsers map[uint]*models.User

func (f fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func newRouter(jm *utils.JWTManager, users UserLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", AuthMiddleware(jm, users))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(CtxUserID), "admin": c.GetBool(CtxIsAdmin)})
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jm := utils.NewJWTManager(strings.Repeat("s", 32), time.Hour)
	users := fakeUsers{
		1: {ID: 1, Role: models.RoleUser},
		2: {ID: 2, Role: models.RoleAdmin},
	}
	r := newRouter(jm, users)

	userTok, err := jm.GenerateJWT(1, "User")
	require.NoError(t, err)
	// A forged role claim does not grant the capability.
	forged, err := jm.GenerateJWT(1, "Admin")
	require.NoError(t, err)
	adminTok, err := jm.GenerateJWT(2, "Admin")
	require.NoError(t, err)
	ghostTok, err := jm.GenerateJWT(99, "User")
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer nope", http.StatusUnauthorized},
		{"unknown user", "/me", "Bearer " + ghostTok, http.StatusUnauthorized},
		{"user", "/me", "Bearer " + userTok, http.StatusOK},
		{"query token", "/me?access_token=" + userTok, "", http.StatusOK},
		{"user on admin", "/admin", "Bearer " + userTok, http.StatusForbidden},
		{"forged role", "/admin", "Bearer " + forged, http.StatusForbidden},
		{"admin", "/admin", "Bearer " + adminTok, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	for _, path := range []string{"/ok", "/boom"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	requests := logs.FilterMessage("http.request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, int64(http.StatusOK), requests[0].ContextMap()["status"])
	assert.Equal(t, int64(http.StatusInternalServerError), requests[1].ContextMap()["status"])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
