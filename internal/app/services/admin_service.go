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
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
)

// AdminService is the dashboard's query/mutation surface: a thin wrapper over
// the record store plus credential verification.
type AdminService interface {
	Login(ctx context.Context, username, password string) (*dto.AdminInfo, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]dto.StudentListItem, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	DeleteStudent(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*models.StudentStats, error)
	ExportCSV(ctx context.Context) (string, error)
}

// AdminStudentStore is the slice of the record store the dashboard needs.
type AdminStudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*models.StudentStats, error)
}

// AdminCredentialStore looks up admin credentials.
type AdminCredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	students AdminStudentStore
	admins   AdminCredentialStore
	assets   assetstore.Store
	logger   zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	students AdminStudentStore,
	admins AdminCredentialStore,
	assets assetstore.Store,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		students: students,
		admins:   admins,
		assets:   assets,
		logger:   logger,
	}
}

// Login verifies admin credentials against the stored bcrypt hash. Unknown
// username and wrong password produce the same error so accounts cannot be
// enumerated.
func (s *adminServiceImpl) Login(ctx context.Context, username, password string) (*dto.AdminInfo, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Admin lookup failed")
		return nil, apperrors.ErrInvalidCredentials
	}
	if admin == nil || !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &dto.AdminInfo{
		Username: admin.Username,
		Name:     admin.Name,
	}, nil
}

// ListStudents returns the dashboard rows, newest registration first.
func (s *adminServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]dto.StudentListItem, error) {
	students, err := s.students.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	items := make([]dto.StudentListItem, 0, len(students))
	for _, st := range students {
		items = append(items, dto.StudentListItem{
			ID:                 st.ID,
			FullName:           st.FullName,
			Class:              st.Class,
			OlympiadType:       st.OlympiadType,
			RegistrationNumber: st.RegistrationNumber,
			RegistrationDate:   st.RegistrationDate.Format("2006-01-02"),
			PaymentStatus:      string(st.PaymentStatus),
			FatherMobile:       st.FatherMobile,
			PhotoURL:           st.PhotoURL,
		})
	}

	return items, nil
}

// GetStudent returns one registration record.
func (s *adminServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// UpdatePaymentStatus transitions a record between pending and paid. Setting
// the current status again is a no-op success.
func (s *adminServiceImpl) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	paymentStatus := models.PaymentStatus(status)
	if !paymentStatus.Valid() {
		return apperrors.NewCustomError(apperrors.ErrInvalidPaymentStatus,
			fmt.Sprintf("payment status must be %q or %q", models.PaymentPending, models.PaymentPaid))
	}

	if err := s.students.UpdatePaymentStatus(ctx, id, paymentStatus); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", id).Str("status", status).Msg("Payment status updated")
	return nil
}

// DeleteStudent removes a registration and best-effort releases its stored
// image assets. Placeholder references are never removed, and an asset removal
// failure does not undo the record deletion.
func (s *adminServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting student: %w", err)
	}
	if student == nil {
		return apperrors.ErrStudentNotFound
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	for _, url := range []string{student.PhotoURL, student.SignatureURL} {
		if assetstore.IsPlaceholder(url) {
			continue
		}
		if err := s.assets.Remove(ctx, url); err != nil {
			s.logger.Warn().Err(err).Str("url", url).Int64("studentId", id).Msg("Failed to remove asset, continuing")
		}
	}

	s.logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}

// GetStats returns the aggregate dashboard counts.
func (s *adminServiceImpl) GetStats(ctx context.Context) (*models.StudentStats, error) {
	stats, err := s.students.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return stats, nil
}

// csvHeaders lists the exported columns. Internal and binary fields (asset
// URLs, timestamps) are excluded.
var csvHeaders = []string{
	"id", "class", "olympiadType", "fullName", "fatherName", "motherName",
	"fatherMobile", "motherMobile", "address", "gender", "dateOfBirth",
	"educationalInstitute", "dreamUniversity", "previousScholarship",
	"scholarshipDetails", "registrationNumber", "registrationDate", "paymentStatus",
}

// ExportCSV dumps all registrations as comma-separated text. Values containing
// a comma are double-quoted.
func (s *adminServiceImpl) ExportCSV(ctx context.Context) (string, error) {
	students, err := s.students.GetAll(ctx, models.StudentFilter{})
	if err != nil {
		return "", fmt.Errorf("error exporting students: %w", err)
	}

	if len(students) == 0 {
		return "No data to export", nil
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))
	b.WriteByte('\n')

	for _, st := range students {
		row := []string{
			fmt.Sprintf("%d", st.ID),
			st.Class,
			st.OlympiadType,
			st.FullName,
			st.FatherName,
			st.MotherName,
			st.FatherMobile,
			deref(st.MotherMobile),
			st.Address,
			st.Gender,
			st.DateOfBirth,
			st.EducationalInstitute,
			st.DreamUniversity,
			st.PreviousScholarship,
			deref(st.ScholarshipDetails),
			st.RegistrationNumber,
			st.RegistrationDate.Format("2006-01-02"),
			string(st.PaymentStatus),
		}
		for i, value := range row {
			if strings.Contains(value, ",") {
				row[i] = `"` + value + `"`
			}
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
