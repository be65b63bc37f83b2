package root_test

import (
	"testing"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "jose-ingest", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Import bank statements")
	assert.Contains(t, root.Cmd.Long, "CSV, OFX and PDF")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	if root.Cmd.PersistentFlags().Lookup("log-level") == nil {
		root.Init()
	}

	for _, name := range []string{"log-level", "log-format", "database"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags root.CommonFlags
		want  [3]string
	}{
		{"no flags keep config", root.CommonFlags{}, [3]string{"info", "text", "data/jose.db"}},
		{"all flags", root.CommonFlags{LogLevel: "debug", LogFormat: "json", Database: "/tmp/x.db"}, [3]string{"debug", "json", "/tmp/x.db"}},
		{"database only", root.CommonFlags{Database: "other.db"}, [3]string{"info", "text", "other.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Log.Level = "info"
			cfg.Log.Format = "text"
			cfg.Database.Path = "data/jose.db"

			root.ApplyFlags(cfg, tt.flags)
			assert.Equal(t, tt.want, [3]string{cfg.Log.Level, cfg.Log.Format, cfg.Database.Path})
		})
	}
}
