package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/services"
	"github.com/HujaifaBytes/Student-Registration-website/internal/middleware"
)

// RegistrationController handles public registration endpoints
type RegistrationController struct {
	registrationService services.RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

// Register accepts a multipart submission and runs the intake pipeline.
func (c *RegistrationController) Register(ctx *gin.Context) {
	var form dto.RegistrationForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data").WithDetails(err.Error())))
		return
	}

	// Image uploads are optional; a file that cannot be read is treated the
	// same as a missing one and falls back to the placeholder downstream.
	photo := c.readUpload(ctx, "photo")
	signature := c.readUpload(ctx, "signature")

	result, err := c.registrationService.Register(ctx, &form, photo, signature)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegistrationResponse{
		Success:            true,
		StudentID:          result.StudentID,
		RegistrationNumber: result.RegistrationNumber,
		Message:            "Registration successful",
	})
}

// GetStudent returns one registration record.
func (c *RegistrationController) GetStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID")))
		return
	}

	student, err := c.registrationService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// readUpload reads an optional multipart file into memory. Absent files and
// read failures both yield nil.
func (c *RegistrationController) readUpload(ctx *gin.Context, field string) []byte {
	fileHeader, err := ctx.FormFile(field)
	if err != nil || fileHeader == nil || fileHeader.Size == 0 {
		return nil
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Str("field", field).Msg("Failed to read uploaded file")
		return nil
	}
	return data
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
