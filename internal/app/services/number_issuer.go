package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
)

// NumberIssuer produces a human-readable registration identifier of the form
// <PREFIX>-<YEAR>-<SEQUENCE-OR-RANDOM>. The result is embedded in the same
// record write that persists the registration; issuing does not reserve the
// number.
type NumberIssuer interface {
	Next(ctx context.Context) (string, error)
}

// SequenceSource provides the store-side atomic registration counter.
type SequenceSource interface {
	NextRegistrationSequence(ctx context.Context) (int64, error)
}

// SequenceIssuer is the primary numbering strategy: it delegates to the store's
// atomic sequence, which guarantees monotonic uniqueness under concurrent
// calls. A sequence failure is a hard error; there is no silent fallback.
type SequenceIssuer struct {
	prefix string
	source SequenceSource
	now    func() time.Time
}

// NewSequenceIssuer creates a sequence-backed issuer.
func NewSequenceIssuer(prefix string, source SequenceSource) *SequenceIssuer {
	return &SequenceIssuer{
		prefix: prefix,
		source: source,
		now:    time.Now,
	}
}

// Next returns the next registration number, e.g. "SSS-2026-0042".
func (i *SequenceIssuer) Next(ctx context.Context) (string, error) {
	seq, err := i.source.NextRegistrationSequence(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrNumberGeneration, err)
	}

	return fmt.Sprintf("%s-%d-%04d", i.prefix, i.now().Year(), seq), nil
}

const randomTokenLength = 6
const randomTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomIssuer is the fallback numbering strategy for stores without an atomic
// sequence. It offers NO uniqueness guarantee; the unique column on
// registration_number is the only backstop against collisions.
type RandomIssuer struct {
	prefix string
	now    func() time.Time
	rng    *rand.Rand
}

// NewRandomIssuer creates a random-suffix issuer.
func NewRandomIssuer(prefix string) *RandomIssuer {
	return &RandomIssuer{
		prefix: prefix,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns a registration number with a random 6-character token, e.g.
// "SSS-2026-X7K2QD".
func (i *RandomIssuer) Next(_ context.Context) (string, error) {
	token := make([]byte, randomTokenLength)
	for j := range token {
		token[j] = randomTokenAlphabet[i.rng.Intn(len(randomTokenAlphabet))]
	}

	return fmt.Sprintf("%s-%d-%s", i.prefix, i.now().Year(), token), nil
}
