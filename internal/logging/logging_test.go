package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenWritesUnderLocalAppData(t *testing.T) {
	local := t.TempDir()
	t.Setenv("LOCALAPPDATA", local)

	logger, err := Open()
	if err != nil {
		t.Fatal(err)
	}
	logger.Printf("[INFO] test entry")

	data, err := os.ReadFile(filepath.Join(local, "quickclean", "quickclean.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestOpenRequiresLocalAppData(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "")
	if _, err := Open(); err == nil {
		t.Error("expected an error with no LOCALAPPDATA")
	}
}
