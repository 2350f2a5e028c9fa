package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)
	t.Setenv("SHELF_STATE_DIR", "")
	t.Setenv("SHELF_ADMIN_EMAIL", "")
	t.Setenv("SHELF_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StateDir != filepath.Join(tmpDir, "shelf") {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.AdminEmail != DefaultAdminEmail {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level = %v, want warn", cfg.Level())
	}
	if cfg.WPM != 250 {
		t.Errorf("WPM = %d, want 250", cfg.WPM)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := `state_dir: /var/lib/shelf
admin_email: root@example.com
log_level: debug
min_chapter_len: 50
chunk_size: 1200
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHELF_STATE_DIR", "")
	t.Setenv("SHELF_ADMIN_EMAIL", "boss@example.com")
	t.Setenv("SHELF_LOG_LEVEL", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StateDir != "/var/lib/shelf" {
		t.Errorf("StateDir = %q", cfg.StateDir)
	}
	if cfg.AdminEmail != "boss@example.com" {
		t.Errorf("env override lost: AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.MinChapterLen != 50 || cfg.ChunkSize != 1200 {
		t.Errorf("segmenter settings = %d/%d", cfg.MinChapterLen, cfg.ChunkSize)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("state_dir: [unclosed"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "book", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "book=abc") {
		t.Errorf("missing structured attribute: %q", out)
	}
}

func TestLevelFallback(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level = %v, want warn fallback", cfg.Level())
	}
}
