package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/dberrors"
)

// StudentRepository handles database operations for registrations
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `
	id, class, olympiad_type, full_name, father_name, mother_name,
	father_mobile, mother_mobile, address, gender, date_of_birth,
	educational_institute, dream_university, previous_scholarship,
	scholarship_details, photo_url, signature_url, registration_number,
	registration_date, payment_status, created_at, updated_at
`

// selectStudents is the shared read query prefix; the column list must stay in
// sync with scanStudent.
const selectStudents = `SELECT` + studentColumns + `FROM students`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Class, &s.OlympiadType, &s.FullName, &s.FatherName, &s.MotherName,
		&s.FatherMobile, &s.MotherMobile, &s.Address, &s.Gender, &s.DateOfBirth,
		&s.EducationalInstitute, &s.DreamUniversity, &s.PreviousScholarship,
		&s.ScholarshipDetails, &s.PhotoURL, &s.SignatureURL, &s.RegistrationNumber,
		&s.RegistrationDate, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new registration record. The registration date is assigned
// by the database at insert time and never mutated afterwards.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (
			class, olympiad_type, full_name, father_name, mother_name,
			father_mobile, mother_mobile, address, gender, date_of_birth,
			educational_institute, dream_university, previous_scholarship,
			scholarship_details, photo_url, signature_url, registration_number,
			payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, registration_date, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.Class, student.OlympiadType, student.FullName, student.FatherName,
		student.MotherName, student.FatherMobile, student.MotherMobile, student.Address,
		student.Gender, student.DateOfBirth, student.EducationalInstitute,
		student.DreamUniversity, student.PreviousScholarship, student.ScholarshipDetails,
		student.PhotoURL, student.SignatureURL, student.RegistrationNumber,
		student.PaymentStatus,
	).Scan(&student.ID, &student.RegistrationDate, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		// The unique index backs up the pre-insert duplicate check, which runs
		// outside any transaction and can race with a concurrent submit.
		if dberrors.IsDuplicateConstraintError(err, "idx_students_name_mobile") {
			return apperrors.NewDuplicateError("A student with this name and mobile number is already registered")
		}
		// Any other unique violation is the registration number index.
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("registration number collision: %w", apperrors.ErrNumberGeneration)
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a registration by ID. Returns (nil, nil) when no record
// exists.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := selectStudents + ` WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves registrations sorted by creation time, newest first. The
// filter narrows the result set; its zero value returns everything.
func (r *StudentRepository) GetAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.PaymentStatus != "" {
		addCondition("payment_status = $%d", string(filter.PaymentStatus))
	}
	if filter.OlympiadType != "" {
		addCondition("olympiad_type = $%d", filter.OlympiadType)
	}
	if filter.Class != "" {
		addCondition("class = $%d", filter.Class)
	}
	if filter.Search != "" {
		addCondition("full_name ILIKE $%d", "%"+filter.Search+"%")
	}

	query := selectStudents
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// ExistsByNameAndMobile checks whether a registration with the exact same full
// name and guardian mobile already exists.
func (r *StudentRepository) ExistsByNameAndMobile(ctx context.Context, fullName, fatherMobile string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE full_name = $1 AND father_mobile = $2)`,
		fullName, fatherMobile).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking duplicate registration: %w", err)
	}

	return exists, nil
}

// NextRegistrationSequence advances the store-side registration counter and
// returns the new value. The sequence guarantees monotonic uniqueness under
// concurrent calls.
func (r *StudentRepository) NextRegistrationSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `SELECT nextval('registration_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("error advancing registration sequence: %w", err)
	}

	return seq, nil
}

// UpdatePaymentStatus sets the payment status of a registration. Applying the
// current status again is a no-op success.
func (r *StudentRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	query := `
		UPDATE students
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a registration record.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetStats returns the aggregate dashboard counts, computed directly from the
// store.
func (r *StudentRepository) GetStats(ctx context.Context) (*models.StudentStats, error) {
	var stats models.StudentStats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE payment_status = 'paid'),
			COUNT(*) FILTER (WHERE payment_status = 'pending')
		FROM students`).Scan(&stats.TotalRegistered, &stats.TotalPaid, &stats.TotalPending)
	if err != nil {
		return nil, fmt.Errorf("error computing stats: %w", err)
	}

	return &stats, nil
}
