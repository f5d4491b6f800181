package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/assetstore"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/imgproc"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/validation"
)

// RegistrationService runs the intake pipeline for new submissions.
type RegistrationService interface {
	Register(ctx context.Context, form *dto.RegistrationForm, photo, signature []byte) (*dto.RegistrationResult, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
}

// RegistrationStore is the slice of the record store the pipeline needs.
type RegistrationStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByNameAndMobile(ctx context.Context, fullName, fatherMobile string) (bool, error)
}

// ImageDimensions are the fixed normalization targets for uploaded images.
type ImageDimensions struct {
	PhotoWidth      int
	PhotoHeight     int
	SignatureWidth  int
	SignatureHeight int
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	store  RegistrationStore
	assets assetstore.Store
	issuer NumberIssuer
	dims   ImageDimensions
	logger zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	store RegistrationStore,
	assets assetstore.Store,
	issuer NumberIssuer,
	dims ImageDimensions,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		store:  store,
		assets: assets,
		issuer: issuer,
		dims:   dims,
		logger: logger,
	}
}

// Register executes the intake pipeline: validate, duplicate check, number
// issuance, asset processing, persistence. A confirmed duplicate or any
// validation, numbering or persistence failure aborts the submission; a failed
// duplicate-check query and any asset failure are absorbed. No step is retried
// and there is no idempotency key: the pipeline runs at most once per
// submission.
func (s *registrationServiceImpl) Register(ctx context.Context, form *dto.RegistrationForm, photo, signature []byte) (*dto.RegistrationResult, error) {
	// Validating: every required field must be non-empty. Nothing else has
	// happened yet, so failure here has no side effects.
	if err := validateForm(form); err != nil {
		return nil, err
	}

	// CheckingDuplicate: best-effort. A failed query is logged and treated as
	// "no duplicate found"; the unique index on (full_name, father_mobile) is
	// the hard backstop.
	exists, err := s.store.ExistsByNameAndMobile(ctx, form.FullName, form.FatherMobile)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("fullName", form.FullName).
			Msg("Duplicate check failed, continuing with registration")
	} else if exists {
		return nil, apperrors.NewDuplicateError("A student with this name and mobile number is already registered")
	}

	// IssuingNumber: a sequence failure fails the submission.
	registrationNumber, err := s.issuer.Next(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Registration number generation failed")
		return nil, err
	}

	// ProcessingAssets: photo and signature are handled independently and
	// never fail the registration; a placeholder reference is substituted on
	// any processing or upload failure.
	photoURL := s.processAsset(ctx, photo,
		s.dims.PhotoWidth, s.dims.PhotoHeight,
		registrationNumber+"-photo.jpg", assetstore.PlaceholderPhotoURL)
	signatureURL := s.processAsset(ctx, signature,
		s.dims.SignatureWidth, s.dims.SignatureHeight,
		registrationNumber+"-signature.jpg", assetstore.PlaceholderSignatureURL)

	student := &models.Student{
		Class:                form.Class,
		OlympiadType:         form.OlympiadType,
		FullName:             form.FullName,
		FatherName:           form.FatherName,
		MotherName:           form.MotherName,
		FatherMobile:         form.FatherMobile,
		MotherMobile:         optional(form.MotherMobile),
		Address:              form.Address,
		Gender:               form.Gender,
		DateOfBirth:          form.DateOfBirth,
		EducationalInstitute: form.EducationalInstitute,
		DreamUniversity:      form.DreamUniversity,
		PreviousScholarship:  form.PreviousScholarship,
		PhotoURL:             photoURL,
		SignatureURL:         signatureURL,
		RegistrationNumber:   registrationNumber,
		PaymentStatus:        models.PaymentPending,
	}
	// Scholarship details are kept only when the applicant answered yes.
	if form.PreviousScholarship == "yes" {
		student.ScholarshipDetails = optional(form.ScholarshipDetails)
	}

	// Persisting.
	if err := s.store.Create(ctx, student); err != nil {
		s.logger.Error().Err(err).Str("registrationNumber", registrationNumber).Msg("Failed to persist registration")
		return nil, apperrors.NewCustomError(apperrors.ErrPersistence, "Failed to register student. Please try again.")
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("registrationNumber", registrationNumber).
		Msg("Student registered")

	return &dto.RegistrationResult{
		StudentID:          student.ID,
		RegistrationNumber: registrationNumber,
	}, nil
}

// GetStudentByID retrieves a registration record.
func (s *registrationServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// processAsset normalizes and uploads one image. If no file was provided, or
// processing or upload fails, the placeholder reference is returned instead;
// asset failures are never fatal to the registration.
func (s *registrationServiceImpl) processAsset(ctx context.Context, data []byte, width, height int, key, placeholder string) string {
	if len(data) == 0 {
		return placeholder
	}

	img, err := imgproc.Normalize(data, width, height)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Image processing failed, using placeholder")
		return placeholder
	}

	url, err := s.assets.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Asset upload failed, using placeholder")
		return placeholder
	}

	return url
}

// validateForm checks all required submission fields. Scholarship details are
// required only when the previous-scholarship answer is yes.
func validateForm(form *dto.RegistrationForm) error {
	var req validation.RequiredFields
	req.Check("class", form.Class).
		Check("olympiadType", form.OlympiadType).
		Check("fullName", form.FullName).
		Check("fatherName", form.FatherName).
		Check("motherName", form.MotherName).
		Check("fatherMobile", form.FatherMobile).
		Check("address", form.Address).
		Check("gender", form.Gender).
		Check("dateOfBirth", form.DateOfBirth).
		Check("educationalInstitute", form.EducationalInstitute).
		Check("dreamUniversity", form.DreamUniversity).
		Check("previousScholarship", form.PreviousScholarship).
		CheckIf(form.PreviousScholarship == "yes", "scholarshipDetails", form.ScholarshipDetails)

	if !req.OK() {
		return apperrors.NewValidationError("Missing required fields: " + strings.Join(req.Missing(), ", "))
	}

	return nil
}

// optional returns nil for a blank string so it maps to NULL in the store.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
