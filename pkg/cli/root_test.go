// pkg/cli/root_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prabhav9252/netflix-elt/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Source:   &config.SourceConfig{CSVPath: "netflix_titles.csv"},
		Postgres: &config.PostgresConfig{Schema: "public"},
	}
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	t.Run("registers every phase", func(t *testing.T) {
		var names []string
		for _, cmd := range root.Commands() {
			names = append(names, cmd.Name())
		}
		assert.Contains(t, names, "load")
		assert.Contains(t, names, "transform")
		assert.Contains(t, names, "analyze")
		assert.Contains(t, names, "check")
		assert.Contains(t, names, "run")
	})

	t.Run("registers shared flags", func(t *testing.T) {
		assert.NotNil(t, root.PersistentFlags().Lookup("csv"))
		assert.NotNil(t, root.PersistentFlags().Lookup("limit"))
	})

	t.Run("registers phase flags", func(t *testing.T) {
		transform, _, err := root.Find([]string{"transform"})
		require.NoError(t, err)
		assert.NotNil(t, transform.Flags().Lookup("dry-run"))

		run, _, err := root.Find([]string{"run"})
		require.NoError(t, err)
		assert.NotNil(t, run.Flags().Lookup("report"))

		analyze, _, err := root.Find([]string{"analyze"})
		require.NoError(t, err)
		assert.NotNil(t, analyze.Flags().Lookup("report"))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("POSTGRES_USER", "netflix")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
	t.Setenv("NETFLIX_CSV_PATH", "/data/netflix_titles.csv")

	cfg, err := loadConfig(&Options{CSVPath: "/tmp/override.csv", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.csv", cfg.Source.CSVPath)
	assert.Equal(t, 10, cfg.Source.Limit)
	assert.Equal(t, "netflix", cfg.Postgres.User)
}

func TestApplyOverrides(t *testing.T) {
	t.Run("flags override the environment", func(t *testing.T) {
		cfg := testConfig()
		applyOverrides(cfg, &Options{CSVPath: "/tmp/other.csv", Limit: 100, ReportPath: "out.json"})

		assert.Equal(t, "/tmp/other.csv", cfg.Source.CSVPath)
		assert.Equal(t, 100, cfg.Source.Limit)
		assert.Equal(t, "out.json", cfg.ReportPath)
	})

	t.Run("unset flags leave the environment alone", func(t *testing.T) {
		cfg := testConfig()
		cfg.ReportPath = "from-env.json"
		applyOverrides(cfg, &Options{})

		assert.Equal(t, "netflix_titles.csv", cfg.Source.CSVPath)
		assert.Equal(t, 0, cfg.Source.Limit)
		assert.Equal(t, "from-env.json", cfg.ReportPath)
	})
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")
	require.NoError(t, writeJSON(path, map[string]int{"rows": 42}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 42, decoded["rows"])
}
