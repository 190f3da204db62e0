package rag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPipelineError(FailureProvider, StageEmbed, cause)

	assert.Equal(t, "provider_error at embed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var pe *PipelineError
	wrapped := fmt.Errorf("ask: %w", err)
	assert.ErrorAs(t, wrapped, &pe)
	assert.Equal(t, StageEmbed, pe.Stage)

	assert.Equal(t, "no_results at search", NewPipelineError(FailureNoResults, StageSearch, nil).Error())
}
