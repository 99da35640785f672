package universe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeOptionsFile(t *testing.T, data string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "life.json")
	if err := os.WriteFile(name, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadOptions(t *testing.T) {
	name := writeOptionsFile(t, `{
		"width": 64,
		"height": 32,
		"interval_ms": 50,
		"engine": "multithreaded",
		"workers": 4,
		"max_steps": 500,
		"stop_when_stable": true
	}`)
	o, err := LoadOptions(name)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultOptions
	want.Width = 64
	want.Height = 32
	want.Interval = 50 * time.Millisecond
	want.Engine = EngineMultithreaded
	want.Workers = 4
	want.MaxSteps = 500
	want.StopWhenStable = true
	if o != want {
		t.Fatalf("options %+v, expected %+v", o, want)
	}
}

func TestLoadOptions_Errors(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "missing.json")); err == nil || !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("missing file: %v", err)
	}
	if _, err := LoadOptions(writeOptionsFile(t, `{"width": `)); err == nil {
		t.Fatal("malformed file accepted")
	}
	_, err := LoadOptions(writeOptionsFile(t, `{"width": 0}`))
	if errors.Cause(err) != ErrInvalidDimensions {
		t.Fatalf("zero width: %v", err)
	}
	_, err = LoadOptions(writeOptionsFile(t, `{"interval_ms": 1}`))
	if errors.Cause(err) != ErrInvalidInterval {
		t.Fatalf("interval below minimum: %v", err)
	}
}

func TestDefaultOptions_Valid(t *testing.T) {
	if err := DefaultOptions.Validate(); err != nil {
		t.Fatal(err)
	}
}
