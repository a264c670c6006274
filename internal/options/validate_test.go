package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/restdoc/oaserrors"
)

func TestCountSources(t *testing.T) {
	assert.Equal(t, 0, CountSources())
	assert.Equal(t, 0, CountSources(false, false))
	assert.Equal(t, 2, CountSources(true, false, true))
}

func TestRequireSingleSource(t *testing.T) {
	assert.NoError(t, RequireSingleSource("input", "none", "many", false, true, false))

	err := RequireSingleSource("input", "none given", "many given", false, false)
	require.Error(t, err)
	var cfgErr *oaserrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "input", cfgErr.Option)
	assert.Contains(t, err.Error(), "none given")

	err = RequireSingleSource("input", "none given", "many given", true, true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "many given")
	assert.Contains(t, err.Error(), "value: 3")
}
