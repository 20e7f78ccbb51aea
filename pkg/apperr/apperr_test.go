package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindInvalidTransition, KindOf(InvalidTransition("already settled")))
	assert.Equal(t, KindExternal, KindOf(External(errors.New("timeout"), "provider down")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handle webhook: %w", NotFound("payment not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "booking b1 not found", MessageOf(NotFound("booking %s not found", "b1")))

	// The wrapped cause stays out of the client-facing message.
	err := External(errors.New("dial tcp: i/o timeout"), "payment provider is unavailable")
	assert.Equal(t, "payment provider is unavailable", MessageOf(err))
	assert.Contains(t, err.Error(), "i/o timeout")

	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection refused")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := External(cause, "provider down")
	assert.True(t, errors.Is(err, cause))
}
