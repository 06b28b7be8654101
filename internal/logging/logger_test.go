package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_CreatesDirAndLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	log, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("log dir missing: %v", err)
	}

	log.Info("test_message_from_logging_test")

	// lumberjack opens the file lazily on first write
	if _, err := os.Stat(filepath.Join(dir, "pageloadtime.log")); err != nil {
		t.Fatalf("log file missing after write: %v", err)
	}
}
