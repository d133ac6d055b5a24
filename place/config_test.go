package place

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := LoadConfig("")
	require.NoError(err)
	require.Equal(DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "placefmt.yml")
	require.NoError(os.WriteFile(path, []byte("about_years: 10\nseparator: \" / \"\ndefault_format: 2\n"), 0o600))
	cfg, err = LoadConfig(path)
	require.NoError(err)
	require.Equal(Config{PlaceAuto: true, DefaultFormat: 2, AboutYears: 10, Separator: " / "}, cfg)

	t.Setenv("PLACEFMT_PLACE_AUTO", "false")
	t.Setenv("PLACEFMT_FORMAT", "1")
	cfg, err = LoadConfig(path)
	require.NoError(err)
	require.False(cfg.PlaceAuto)
	require.Equal(1, cfg.DefaultFormat)

	t.Setenv("PLACEFMT_ABOUT_YEARS", "many")
	_, err = LoadConfig(path)
	require.Error(err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(err)
}
