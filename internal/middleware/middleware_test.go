package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/jwt"
	"dexboard/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	valid map[string]string
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*jwt.Claims, error) {
	userID, ok := s.valid[token]
	if !ok {
		return nil, util.NewAppError(http.StatusUnauthorized, util.ErrCodeTokenInvalid, "Invalid token")
	}
	claims := &jwt.Claims{UserID: userID}
	claims.ID = "jti-" + token
	return claims, nil
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	auth := stubAuthenticator{valid: map[string]string{"good": "user-1", "cookie-token": "user-2"}}
	r.GET("/me", AuthMiddleware(auth, "token"), func(c *gin.Context) {
		userID, err := util.CurrentUserID(c)
		if err != nil {
			util.SendError(c, err)
			return
		}
		fromCtx, _ := util.UserIDFromContext(c.Request.Context())
		claims := ClaimsFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctx": fromCtx, "jti": claims.ID})
	})
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name     string
		header   string
		cookie   string
		status   int
		wantUser string
		wantCode string
	}{
		{name: "bearer token", header: "Bearer good", status: http.StatusOK, wantUser: "user-1"},
		{name: "cookie wins over header", header: "Bearer good", cookie: "cookie-token", status: http.StatusOK, wantUser: "user-2"},
		{name: "missing token", status: http.StatusUnauthorized, wantCode: util.ErrCodeUnauthorized},
		{name: "malformed header", header: "Token good", status: http.StatusUnauthorized, wantCode: util.ErrCodeUnauthorized},
		{name: "rejected token", header: "Bearer bad", status: http.StatusUnauthorized, wantCode: util.ErrCodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			body := decodeBody(t, w)
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, body["user"])
				assert.Equal(t, tt.wantUser, body["ctx"])
				assert.NotEmpty(t, body["jti"])
				return
			}
			assert.Equal(t, false, body["success"])
			errInfo, ok := body["error"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, errInfo["code"])
		})
	}
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(nil, 2, time.Minute, "test", logger.Nop()).Limit())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
	errInfo := decodeBody(t, limited)["error"].(map[string]interface{})
	assert.Equal(t, util.ErrCodeRateLimit, errInfo["code"])

	// Buckets are per client
	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

func TestRateLimiter_DisabledWithoutLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, 0, logger.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
