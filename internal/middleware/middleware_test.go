package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, rol, empresaID, typ string, ttl time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID:    "00000000-0000-0000-0000-000000000001",
		Username:  "lucia",
		Rol:       rol,
		EmpresaID: empresaID,
		Typ:       typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protegido(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/x", JWTAuth(testSecret), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Rol)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protegido(RolCajero, RolSupervisor, RolAdministrador)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "abc.def.ghi", http.StatusUnauthorized},
		{"valid access", signToken(t, RolCajero, "", "access", time.Hour), http.StatusOK},
		{"refresh rejected", signToken(t, RolCajero, "", "refresh", time.Hour), http.StatusUnauthorized},
		{"expired", signToken(t, RolCajero, "", "access", -time.Minute), http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, get(r, "/x", tc.token).Code)
		})
	}
}

func TestJWTAuth_OtroSecreto(t *testing.T) {
	claims := JWTClaims{Rol: RolAdministrador, Typ: "access"}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("otro"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(protegido(RolAdministrador), "/x", s).Code)
}

func TestRequireRole(t *testing.T) {
	r := protegido(RolSupervisor, RolAdministrador)

	assert.Equal(t, http.StatusForbidden, get(r, "/x", signToken(t, RolCajero, "", "access", time.Hour)).Code)
	w := get(r, "/x", signToken(t, RolSupervisor, "", "access", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RolSupervisor, w.Body.String())
}

func TestJWTClaims_PuedeOperar(t *testing.T) {
	empresa := "3f1c7a52-6d8e-4f0b-9a51-1d2c3b4a5e6f"

	libre := &JWTClaims{Rol: RolCajero}
	assert.True(t, libre.PuedeOperar(empresa))

	ligado := &JWTClaims{Rol: RolCajero, EmpresaID: empresa}
	assert.True(t, ligado.PuedeOperar(strings.ToUpper(empresa)))
	assert.False(t, ligado.PuedeOperar("otra"))

	admin := &JWTClaims{Rol: RolAdministrador, EmpresaID: empresa}
	assert.True(t, admin.PuedeOperar("otra"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := get(r, "/x", "")
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimit_MemoryStore(t *testing.T) {
	l, err := NewLimiter("2-M", nil, "test")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", RateLimit(l, "Demasiadas solicitudes"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/x", "").Code)
	w := get(r, "/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = get(r, "/x", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Demasiadas solicitudes")
}

func TestNewLimiter_FormatoInvalido(t *testing.T) {
	_, err := NewLimiter("muchas", nil, "test")
	assert.Error(t, err)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/x", func(*gin.Context) { panic("boom") })

	w := get(r, "/x", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/v1/cortes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/v1/cortes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/bind", func(c *gin.Context) {
		_ = c.Error(errors.New("campo faltante")).SetType(gin.ErrorTypeBind)
	})
	r.GET("/interno", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: deadlock detected"))
	})
	r.GET("/escrito", func(c *gin.Context) {
		_ = c.Error(errors.New("ya respondido"))
		c.String(http.StatusAccepted, "ok")
	})

	w := get(r, "/bind", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/interno", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "deadlock")

	w = get(r, "/escrito", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}
