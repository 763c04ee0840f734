package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminHandler "github.com/mobimama/mobimama-api/internal/handler/admin"
	authHandler "github.com/mobimama/mobimama-api/internal/handler/auth"
	motherHandler "github.com/mobimama/mobimama-api/internal/handler/mother"
	publicHandler "github.com/mobimama/mobimama-api/internal/handler/public"
	staffHandler "github.com/mobimama/mobimama-api/internal/handler/staff"
	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/middleware"
	"github.com/mobimama/mobimama-api/internal/repository/memory"
	"github.com/mobimama/mobimama-api/internal/session"
	appointmentService "github.com/mobimama/mobimama-api/internal/service/appointment"
	assistantService "github.com/mobimama/mobimama-api/internal/service/assistant"
	authService "github.com/mobimama/mobimama-api/internal/service/auth"
	clinicService "github.com/mobimama/mobimama-api/internal/service/clinic"
	tipService "github.com/mobimama/mobimama-api/internal/service/tip"
	userService "github.com/mobimama/mobimama-api/internal/service/user"
	"github.com/mobimama/mobimama-api/pkg/logger"
	"github.com/mobimama/mobimama-api/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testMetrics = metrics.New("mobimama_router_test")

func newTestRouter(t *testing.T) (*Router, *authService.Service) {
	t.Helper()

	users := memory.NewUserRepository()
	appts := memory.NewAppointmentRepository()
	clinics := memory.NewClinicRepository(appts)
	tips := memory.NewTipRepository()

	sessions := session.NewMemoryStore(time.Hour)
	tokens := session.NewTokenCodec("router-test-secret", time.Hour)
	bundle := i18n.NewBundle()
	log := logger.New(&logger.Config{Level: logger.ErrorLevel})

	authSvc := authService.NewService(users, sessions, tokens)
	tipSvc := tipService.NewService(tips)
	apptSvc := appointmentService.NewService(appts, clinics, nil, log)
	clinicSvc := clinicService.NewService(clinics)
	userSvc := userService.NewService(users, clinics, appts)
	assistantSvc := assistantService.NewService(assistantService.Config{
		Timeout: time.Second,
		BaseURL: "http://unused.invalid",
	}, nil, nil)

	r := New(
		Config{
			RateLimit:      1000,
			RateBurst:      1000,
			RequestTimeout: 5 * time.Second,
			CORS:           middleware.DefaultCORSConfig(),
		},
		log,
		testMetrics,
		authSvc,
		sessions,
		bundle,
		authHandler.NewHandler(authSvc),
		publicHandler.NewHandler(tipSvc, bundle, t.TempDir()),
		motherHandler.NewHandler(tipSvc, apptSvc, assistantSvc),
		staffHandler.NewHandler(tipSvc, apptSvc),
		adminHandler.NewHandler(userSvc, clinicSvc, apptSvc),
	)
	return r, authSvc
}

func do(r *Router, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *Router, username, password string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func registerAs(t *testing.T, r *Router, username, role string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         username,
		"password":         "strong-pass-1",
		"confirm_password": "strong-pass-1",
		"role":             role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return loginAs(t, r, username, "strong-pass-1")
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMotherBookingFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAs(t, r, "akosua", "mother")

	w := do(r, http.MethodPost, "/api/v1/mother/appointments", token, map[string]string{
		"mother_name": "spoofed",
		"phone":       "0244000000",
		"clinic_name": "Ridge Hospital",
		"date":        "2026-09-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"mother_name":"akosua"`)

	w = do(r, http.MethodGet, "/api/v1/mother/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ridge Hospital")

	// Another mother sees an empty listing.
	other := registerAs(t, r, "abena", "mother")
	w = do(r, http.MethodGet, "/api/v1/mother/appointments", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Ridge Hospital")
}

func TestMotherRoutesNeedMotherRole(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/mother/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	staffToken := registerAs(t, r, "nurse1", "nurse")
	w = do(r, http.MethodGet, "/api/v1/mother/dashboard", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffTipManagementAndPublicListing(t *testing.T) {
	r, _ := newTestRouter(t)
	staffToken := registerAs(t, r, "nurse1", "nurse")

	w := do(r, http.MethodPost, "/api/v1/staff/tips", staffToken, map[string]string{
		"title":    "Iron rich foods",
		"content":  "Eat kontomire and beans.",
		"language": "en",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Mothers cannot manage tips.
	motherToken := registerAs(t, r, "akosua", "mother")
	w = do(r, http.MethodPost, "/api/v1/staff/tips", motherToken, map[string]string{
		"title": "x", "content": "y", "language": "en",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The new tip is on the public listing, no login needed.
	w = do(r, http.MethodGet, "/api/v1/tips", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Iron rich foods")
}

func TestAdminPanelGating(t *testing.T) {
	r, authSvc := newTestRouter(t)

	// Anonymous and non-admin callers are kept out.
	w := do(r, http.MethodGet, AdminPrefix, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	motherToken := registerAs(t, r, "akosua", "mother")
	w = do(r, http.MethodGet, AdminPrefix, motherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The mother cannot log in through the panel either.
	w = do(r, http.MethodPost, AdminPrefix+"/login", "", map[string]string{
		"username": "akosua", "password": "strong-pass-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A provisioned admin gets in and sees counts.
	_, err := authSvc.ProvisionAdmin(context.Background(), "root", "admin-pass-1")
	require.NoError(t, err)
	w = do(r, http.MethodPost, AdminPrefix+"/login", "", map[string]string{
		"username": "root", "password": "admin-pass-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = do(r, http.MethodGet, AdminPrefix, resp.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users":2`)
}

func TestAskMobiAlwaysAnswers(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAs(t, r, "akosua", "mother")

	// The provider is unreachable in tests, so the fixed fallback comes back
	// with a 200.
	w := do(r, http.MethodPost, "/api/v1/mother/ask-mobi", token, map[string]string{
		"message": "Is it safe to drink coffee?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), assistantService.Fallback)
}

func TestLogoutKillsSession(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAs(t, r, "akosua", "mother")

	w := do(r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/mother/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
