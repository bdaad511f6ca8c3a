package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/modtex/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MODTEX_ENGINE", "client")
	t.Setenv("MODTEX_IGNORE", " drafts/** , ,archive/**")
	t.Setenv("MODTEX_VERIFY", "1")
	t.Setenv("MODTEX_PAGE", "true")
	t.Setenv("MODTEX_PAGE_LANG", "sv")
	t.Setenv("MODTEX_SERVE_MAX_BODY_BYTES", "4096")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "client", cfg.Engine)
	assert.Equal(t, []string{"drafts/**", "archive/**"}, cfg.Ignore)
	assert.True(t, cfg.Verify)
	assert.True(t, cfg.Page.Enabled)
	assert.Equal(t, "sv", cfg.Page.Lang)
	assert.Equal(t, int64(4096), cfg.Serve.MaxBodyBytes)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		t.Setenv("MODTEX_VERIFY", "maybe")
		err := LoadFromEnv(config.NewConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MODTEX_VERIFY")
	})

	t.Run("int", func(t *testing.T) {
		t.Setenv("MODTEX_JOBS", "many")
		err := LoadFromEnv(config.NewConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MODTEX_JOBS")
	})
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, LoadFromEnv(nil))
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MODTEX_OUTPUT_DIR", GetEnvVarName("output_dir"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	for _, v := range vars {
		assert.NotEmpty(t, v.Description, v.Name)
	}
}
