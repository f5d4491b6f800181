package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/services"
	"github.com/HujaifaBytes/Student-Registration-website/internal/middleware"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
)

// AdminController handles dashboard authentication and management endpoints
type AdminController struct {
	adminService services.AdminService
	sessions     *auth.SessionService
	cookieName   string
	secureCookie bool
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, sessions *auth.SessionService, cookieName string, secureCookie bool, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		sessions:     sessions,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login verifies credentials and sets the session cookie.
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")))
		return
	}

	admin, err := c.adminService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, err := c.sessions.Issue(admin.Username, admin.Name)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to issue session token")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to create session")))
		return
	}

	maxAge := int(c.sessions.TTL() / time.Second)
	ctx.SetCookie(c.cookieName, token, maxAge, "/", "", c.secureCookie, true)

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{
		LoggedIn: true,
		Admin:    admin,
	}))
}

// Logout clears the session cookie. It succeeds whether or not a session exists.
func (c *AdminController) Logout(ctx *gin.Context) {
	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{LoggedIn: false}))
}

// Session reports whether the request carries a valid session cookie.
// An absent or invalid cookie is not an error here.
func (c *AdminController) Session(ctx *gin.Context) {
	token, err := ctx.Cookie(c.cookieName)
	if err != nil || token == "" {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{LoggedIn: false}))
		return
	}

	claims, err := c.sessions.Verify(token)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{LoggedIn: false}))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SessionResponse{
		LoggedIn: true,
		Admin:    &dto.AdminInfo{Username: claims.Username, Name: claims.Name},
	}))
}

// ListStudents returns registrations matching the query filters.
func (c *AdminController) ListStudents(ctx *gin.Context) {
	filter := models.StudentFilter{
		PaymentStatus: models.PaymentStatus(ctx.Query("paymentStatus")),
		OlympiadType:  ctx.Query("olympiadType"),
		Class:         ctx.Query("class"),
		Search:        ctx.Query("search"),
	}

	students, err := c.adminService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// GetStudent returns a single registration for the dashboard detail view.
func (c *AdminController) GetStudent(ctx *gin.Context) {
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	student, err := c.adminService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdatePayment sets a registration's payment status.
func (c *AdminController) UpdatePayment(ctx *gin.Context) {
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Payment status is required")))
		return
	}

	if err := c.adminService.UpdatePaymentStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"updated": true}))
}

// DeleteStudent removes a registration and its stored assets.
func (c *AdminController) DeleteStudent(ctx *gin.Context) {
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	if err := c.adminService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"deleted": true}))
}

// Stats returns registration counters for the dashboard.
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// ExportCSV streams all registrations as a CSV download.
func (c *AdminController) ExportCSV(ctx *gin.Context) {
	csv, err := c.adminService.ExportCSV(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("registrations-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (c *AdminController) studentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return 0, false
	}
	return id, true
}
