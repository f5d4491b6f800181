package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	"github.com/HujaifaBytes/Student-Registration-website/internal/app/models/dto"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/assetstore"
)

type fakeRegistrationStore struct {
	students  []*models.Student
	existsErr error
	exists    bool
	createErr error
	nextID    int64

	existsCalls int
	createCalls int
}

func (f *fakeRegistrationStore) Create(_ context.Context, student *models.Student) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	student.ID = f.nextID
	f.students = append(f.students, student)
	return nil
}

func (f *fakeRegistrationStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, st := range f.students {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationStore) ExistsByNameAndMobile(_ context.Context, _, _ string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.exists, nil
}

type fakeAssetStore struct {
	putErr   error
	putCalls []string
}

func (f *fakeAssetStore) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.putCalls = append(f.putCalls, key)
	if f.putErr != nil {
		return "", f.putErr
	}
	return "http://assets.test/" + key, nil
}

func (f *fakeAssetStore) Remove(context.Context, string) error {
	return nil
}

type fixedIssuer struct {
	number string
	err    error
	calls  int
}

func (f *fixedIssuer) Next(context.Context) (string, error) {
	f.calls++
	return f.number, f.err
}

func testDims() ImageDimensions {
	return ImageDimensions{PhotoWidth: 600, PhotoHeight: 600, SignatureWidth: 300, SignatureHeight: 80}
}

func validForm() *dto.RegistrationForm {
	return &dto.RegistrationForm{
		Class:                "10",
		OlympiadType:         "Physics",
		FullName:             "Arif Hossain",
		FatherName:           "Kamal Hossain",
		MotherName:           "Salma Begum",
		FatherMobile:         "01711000000",
		Address:              "Dhaka",
		Gender:               "male",
		DateOfBirth:          "2009-04-12",
		EducationalInstitute: "Dhaka College",
		DreamUniversity:      "BUET",
		PreviousScholarship:  "no",
	}
}

func validImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))))
	return buf.Bytes()
}

func newTestRegistrationService(store *fakeRegistrationStore, assets *fakeAssetStore, issuer *fixedIssuer) RegistrationService {
	return NewRegistrationService(store, assets, issuer, testDims(), zerolog.Nop())
}

func TestRegister_Success(t *testing.T) {
	store := &fakeRegistrationStore{}
	assets := &fakeAssetStore{}
	issuer := &fixedIssuer{number: "SSS-2026-0001"}
	svc := newTestRegistrationService(store, assets, issuer)

	result, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.StudentID)
	assert.Equal(t, "SSS-2026-0001", result.RegistrationNumber)

	require.Len(t, store.students, 1)
	st := store.students[0]
	assert.Equal(t, models.PaymentPending, st.PaymentStatus)
	assert.Equal(t, "SSS-2026-0001", st.RegistrationNumber)
	// No files uploaded, so both references are placeholders.
	assert.Equal(t, assetstore.PlaceholderPhotoURL, st.PhotoURL)
	assert.Equal(t, assetstore.PlaceholderSignatureURL, st.SignatureURL)
	assert.Empty(t, assets.putCalls)
}

func TestRegister_UploadsNormalizedImages(t *testing.T) {
	store := &fakeRegistrationStore{}
	assets := &fakeAssetStore{}
	issuer := &fixedIssuer{number: "SSS-2026-0007"}
	svc := newTestRegistrationService(store, assets, issuer)

	img := validImage(t)
	result, err := svc.Register(context.Background(), validForm(), img, img)
	require.NoError(t, err)

	assert.Equal(t, []string{"SSS-2026-0007-photo.jpg", "SSS-2026-0007-signature.jpg"}, assets.putCalls)
	st := store.students[0]
	assert.Equal(t, "http://assets.test/SSS-2026-0007-photo.jpg", st.PhotoURL)
	assert.Equal(t, "http://assets.test/SSS-2026-0007-signature.jpg", st.SignatureURL)
	assert.Equal(t, "SSS-2026-0007", result.RegistrationNumber)
}

func TestRegister_MissingFieldsShortCircuits(t *testing.T) {
	store := &fakeRegistrationStore{}
	issuer := &fixedIssuer{number: "SSS-2026-0001"}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, issuer)

	form := validForm()
	form.FullName = ""
	form.Gender = "   "

	_, err := svc.Register(context.Background(), form, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "fullName")
	assert.Contains(t, err.Error(), "gender")

	// Nothing downstream ran.
	assert.Zero(t, store.existsCalls)
	assert.Zero(t, issuer.calls)
	assert.Zero(t, store.createCalls)
}

func TestRegister_ScholarshipDetailsRequiredWhenYes(t *testing.T) {
	svc := newTestRegistrationService(&fakeRegistrationStore{}, &fakeAssetStore{}, &fixedIssuer{number: "SSS-2026-0001"})

	form := validForm()
	form.PreviousScholarship = "yes"
	form.ScholarshipDetails = ""

	_, err := svc.Register(context.Background(), form, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "scholarshipDetails")
}

func TestRegister_ScholarshipDetailsDroppedWhenNo(t *testing.T) {
	store := &fakeRegistrationStore{}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, &fixedIssuer{number: "SSS-2026-0001"})

	form := validForm()
	form.PreviousScholarship = "no"
	form.ScholarshipDetails = "Merit scholarship 2024"

	_, err := svc.Register(context.Background(), form, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, store.students[0].ScholarshipDetails)
}

func TestRegister_DuplicateRejected(t *testing.T) {
	store := &fakeRegistrationStore{exists: true}
	issuer := &fixedIssuer{number: "SSS-2026-0001"}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, issuer)

	_, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)
	assert.Zero(t, issuer.calls)
	assert.Zero(t, store.createCalls)
}

func TestRegister_DuplicateCheckFailureIsAbsorbed(t *testing.T) {
	store := &fakeRegistrationStore{existsErr: errors.New("query timeout")}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, &fixedIssuer{number: "SSS-2026-0001"})

	result, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "SSS-2026-0001", result.RegistrationNumber)
	assert.Equal(t, 1, store.createCalls)
}

func TestRegister_NumberGenerationFailureIsFatal(t *testing.T) {
	store := &fakeRegistrationStore{}
	issuer := &fixedIssuer{err: apperrors.ErrNumberGeneration}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, issuer)

	_, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNumberGeneration)
	assert.Zero(t, store.createCalls)
}

func TestRegister_CorruptImageFallsBackToPlaceholder(t *testing.T) {
	store := &fakeRegistrationStore{}
	assets := &fakeAssetStore{}
	svc := newTestRegistrationService(store, assets, &fixedIssuer{number: "SSS-2026-0001"})

	_, err := svc.Register(context.Background(), validForm(), []byte("not an image"), nil)
	require.NoError(t, err)

	st := store.students[0]
	assert.Equal(t, assetstore.PlaceholderPhotoURL, st.PhotoURL)
	assert.Empty(t, assets.putCalls)
}

func TestRegister_UploadFailureFallsBackToPlaceholder(t *testing.T) {
	store := &fakeRegistrationStore{}
	assets := &fakeAssetStore{putErr: errors.New("bucket unavailable")}
	svc := newTestRegistrationService(store, assets, &fixedIssuer{number: "SSS-2026-0001"})

	result, err := svc.Register(context.Background(), validForm(), validImage(t), nil)
	require.NoError(t, err)
	assert.Equal(t, "SSS-2026-0001", result.RegistrationNumber)

	st := store.students[0]
	assert.Equal(t, assetstore.PlaceholderPhotoURL, st.PhotoURL)
}

func TestRegister_PersistenceFailure(t *testing.T) {
	store := &fakeRegistrationStore{createErr: errors.New("insert failed")}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, &fixedIssuer{number: "SSS-2026-0001"})

	_, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
}

func TestGetStudentByID(t *testing.T) {
	store := &fakeRegistrationStore{}
	svc := newTestRegistrationService(store, &fakeAssetStore{}, &fixedIssuer{number: "SSS-2026-0001"})

	_, err := svc.Register(context.Background(), validForm(), nil, nil)
	require.NoError(t, err)

	student, err := svc.GetStudentByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Arif Hossain", student.FullName)

	_, err = svc.GetStudentByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
