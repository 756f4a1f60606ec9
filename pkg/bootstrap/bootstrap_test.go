package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"thoreinstein.com/tally/pkg/config"
)

func TestPreParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{name: "no flags", args: []string{"tally"}},
		{name: "long config", args: []string{"tally", "--config", "/tmp/c.toml"}, wantConfig: "/tmp/c.toml"},
		{name: "long config equals", args: []string{"tally", "--config=/tmp/c.toml"}, wantConfig: "/tmp/c.toml"},
		{name: "short config", args: []string{"tally", "-C", "/tmp/c.toml"}, wantConfig: "/tmp/c.toml"},
		{name: "short config joined", args: []string{"tally", "-C/tmp/c.toml"}, wantConfig: "/tmp/c.toml"},
		{name: "verbose long", args: []string{"tally", "--verbose"}, wantVerbose: true},
		{name: "verbose short", args: []string{"tally", "-v"}, wantVerbose: true},
		{name: "both", args: []string{"tally", "-v", "--config", "/tmp/c.toml"}, wantConfig: "/tmp/c.toml", wantVerbose: true},
		{name: "stops at subcommand", args: []string{"tally", "history", "--verbose"}},
		{name: "stops at marker", args: []string{"tally", "--", "--verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotConfig, gotVerbose := PreParseGlobalFlags(tt.args)
			if gotConfig != tt.wantConfig {
				t.Errorf("config = %q, want %q", gotConfig, tt.wantConfig)
			}
			if gotVerbose != tt.wantVerbose {
				t.Errorf("verbose = %v, want %v", gotVerbose, tt.wantVerbose)
			}
		})
	}
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GO_TEST", "true")
	t.Setenv("TALLY_HISTORY_FILE_PATH", filepath.Join(tmpDir, "data", "history.csv"))
	t.Setenv("TALLY_LOGGING_FILE", filepath.Join(tmpDir, "logs", "tally.log"))
	t.Setenv("TALLY_AUDIT_DATABASE_PATH", filepath.Join(tmpDir, "data", "audit.db"))
	t.Cleanup(func() {
		Reset()
		viper.Reset()
	})

	cfg, _, err := InitConfig("", false)
	if err != nil {
		t.Fatalf("InitConfig() error = %v", err)
	}

	if got, want := cfg.History.FilePath, filepath.Join(tmpDir, "data", "history.csv"); got != want {
		t.Errorf("History.FilePath = %q, want %q", got, want)
	}

	// InitConfig creates the directories the configured files live in.
	for _, dir := range []string{filepath.Join(tmpDir, "data"), filepath.Join(tmpDir, "logs")} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("directory %s not created: %v", dir, err)
		}
	}
}

func TestNewLogger_WritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.File = filepath.Join(tmpDir, "tally.log")

	logger, closeFn := NewLogger(cfg, false)
	logger.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestNewLogger_MissingFileFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.File = filepath.Join(t.TempDir(), "no-such-dir", "tally.log")

	logger, closeFn := NewLogger(cfg, false)
	defer closeFn()
	if logger == nil {
		t.Fatal("NewLogger returned nil logger on fallback")
	}
	logger.Info("still works")
}
