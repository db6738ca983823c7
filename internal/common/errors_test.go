package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError_Message(t *testing.T) {
	err := &UpstreamError{Service: "newsapi", StatusCode: 429}
	assert.Equal(t, "newsapi responded with status 429", err.Error())
}

func TestUpstreamError_As(t *testing.T) {
	wrapped := fmt.Errorf("market data: %w", &UpstreamError{Service: "weatherapi", StatusCode: 403})

	var ue *UpstreamError
	if assert.True(t, errors.As(wrapped, &ue)) {
		assert.Equal(t, 403, ue.StatusCode)
		assert.Equal(t, "weatherapi", ue.Service)
	}
}

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{ErrorNotFound, ErrorConflict, ErrorInternal, ErrorUnauthorized, ErrorValidation, ErrInvalidToken}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}
