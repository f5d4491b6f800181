package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/middleware"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
)

const testCookieName = "admin_session"

type fakeAdminService struct {
	loginErr      error
	items         []dto.StudentListItem
	lastFilter    models.StudentFilter
	updateErr     error
	updatedID     int64
	updatedStatus string
	deleteErr     error
	deletedID     int64
	stats         *models.StudentStats
	csv           string
}

func (f *fakeAdminService) Login(_ context.Context, username, _ string) (*dto.AdminInfo, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.AdminInfo{Username: username, Name: "Administrator"}, nil
}

func (f *fakeAdminService) ListStudents(_ context.Context, filter models.StudentFilter) ([]dto.StudentListItem, error) {
	f.lastFilter = filter
	return f.items, nil
}

func (f *fakeAdminService) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeAdminService) UpdatePaymentStatus(_ context.Context, id int64, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

func (f *fakeAdminService) DeleteStudent(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func (f *fakeAdminService) GetStats(context.Context) (*models.StudentStats, error) {
	return f.stats, nil
}

func (f *fakeAdminService) ExportCSV(context.Context) (string, error) {
	return f.csv, nil
}

func newAdminRouter(svc *fakeAdminService) (*gin.Engine, *auth.SessionService) {
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey: "test-secret",
		TTL:       time.Hour,
		Issuer:    "test",
	})
	ctrl := NewAdminController(svc, sessions, testCookieName, false, zerolog.Nop())
	authMw := middleware.NewAuthMiddleware(sessions, testCookieName)

	router := gin.New()
	admin := router.Group("/api/v1/admin")
	admin.POST("/login", ctrl.Login)
	admin.POST("/logout", ctrl.Logout)
	admin.GET("/session", ctrl.Session)
	protected := admin.Group("")
	protected.Use(authMw.SessionAuth())
	protected.GET("/students", ctrl.ListStudents)
	protected.GET("/students/export", ctrl.ExportCSV)
	protected.PATCH("/students/:id/payment", ctrl.UpdatePayment)
	protected.DELETE("/students/:id", ctrl.DeleteStudent)
	protected.GET("/stats", ctrl.Stats)
	return router, sessions
}

func sessionCookie(t *testing.T, sessions *auth.SessionService) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue("admin", "Administrator")
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func TestAdminLoginEndpoint_SetsCookie(t *testing.T) {
	router, _ := newAdminRouter(&fakeAdminService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdminLoginEndpoint_InvalidCredentials(t *testing.T) {
	router, _ := newAdminRouter(&fakeAdminService{loginErr: apperrors.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password", resp.Error.Message)
}

func TestAdminLoginEndpoint_MissingFields(t *testing.T) {
	router, _ := newAdminRouter(&fakeAdminService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"username":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogoutEndpoint_ClearsCookie(t *testing.T) {
	router, sessions := newAdminRouter(&fakeAdminService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/logout", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAdminSessionEndpoint(t *testing.T) {
	router, sessions := newAdminRouter(&fakeAdminService{})

	// No cookie: logged out, still 200.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/session", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":false`)

	// Garbage cookie: logged out, not an error.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":false`)

	// Valid cookie: logged in with identity.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/session", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":true`)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router, _ := newAdminRouter(&fakeAdminService{})

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/students"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodGet, "/api/v1/admin/students/export"},
		{http.MethodPatch, "/api/v1/admin/students/1/payment"},
		{http.MethodDelete, "/api/v1/admin/students/1"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestListStudentsEndpoint_PassesFilters(t *testing.T) {
	svc := &fakeAdminService{items: []dto.StudentListItem{{ID: 1, FullName: "Arif Hossain"}}}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/admin/students?paymentStatus=paid&olympiadType=Physics&class=10&search=arif", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentPaid, svc.lastFilter.PaymentStatus)
	assert.Equal(t, "Physics", svc.lastFilter.OlympiadType)
	assert.Equal(t, "10", svc.lastFilter.Class)
	assert.Equal(t, "arif", svc.lastFilter.Search)
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	svc := &fakeAdminService{}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/students/5/payment",
		strings.NewReader(`{"status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.updatedID)
	assert.Equal(t, "paid", svc.updatedStatus)
}

func TestUpdatePaymentEndpoint_InvalidStatus(t *testing.T) {
	svc := &fakeAdminService{updateErr: apperrors.NewCustomError(apperrors.ErrInvalidPaymentStatus, "payment status must be \"pending\" or \"paid\"")}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/students/5/payment",
		strings.NewReader(`{"status":"refunded"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteStudentEndpoint(t *testing.T) {
	svc := &fakeAdminService{}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/students/9", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), svc.deletedID)
}

func TestStatsEndpoint(t *testing.T) {
	svc := &fakeAdminService{stats: &models.StudentStats{TotalRegistered: 10, TotalPaid: 4, TotalPending: 6}}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalRegistered":10`)
}

func TestExportEndpoint_ServesCSV(t *testing.T) {
	svc := &fakeAdminService{csv: "id,class\n1,10\n"}
	router, sessions := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/students/export", nil)
	req.AddCookie(sessionCookie(t, sessions))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "id,class\n1,10\n", w.Body.String())
}
