package screen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/panegrid/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "screen-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "panegrid.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}
