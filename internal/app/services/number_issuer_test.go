package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
)

type fakeSequenceSource struct {
	next int64
	err  error
}

func (f *fakeSequenceSource) NextRegistrationSequence(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

func fixedTime() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func TestSequenceIssuer_Format(t *testing.T) {
	issuer := NewSequenceIssuer("SSS", &fakeSequenceSource{next: 41})
	issuer.now = fixedTime

	num, err := issuer.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SSS-2026-0042", num)
}

func TestSequenceIssuer_MonotonicNumbers(t *testing.T) {
	issuer := NewSequenceIssuer("SSS", &fakeSequenceSource{})
	issuer.now = fixedTime

	first, err := issuer.Next(context.Background())
	require.NoError(t, err)
	second, err := issuer.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "SSS-2026-0001", first)
	assert.Equal(t, "SSS-2026-0002", second)
}

func TestSequenceIssuer_WidensBeyondFourDigits(t *testing.T) {
	issuer := NewSequenceIssuer("SSS", &fakeSequenceSource{next: 10041})
	issuer.now = fixedTime

	num, err := issuer.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SSS-2026-10042", num)
}

func TestSequenceIssuer_SourceFailure(t *testing.T) {
	issuer := NewSequenceIssuer("SSS", &fakeSequenceSource{err: errors.New("connection refused")})

	_, err := issuer.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNumberGeneration)
}

func TestRandomIssuer_Format(t *testing.T) {
	issuer := NewRandomIssuer("SSS")
	issuer.now = fixedTime

	num, err := issuer.Next(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SSS-2026-[A-Z0-9]{6}$`), num)
}
