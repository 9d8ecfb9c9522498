package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("PYACT_VERBOSE_EXCEPTIONS")
	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.VerboseExceptions)
}

func TestLoadVerboseExceptionsFromEnv(t *testing.T) {
	t.Setenv("PYACT_VERBOSE_EXCEPTIONS", "true")
	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.VerboseExceptions)
}
