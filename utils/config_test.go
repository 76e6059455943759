package utils

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"step_interval_ms": 250, "use_parallel": false, "pattern": "glider.rle"}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.StepInterval() != 250*time.Millisecond {
		t.Errorf("step interval = %v", config.StepInterval())
	}
	if config.UseParallel {
		t.Error("use_parallel not applied")
	}
	if config.Pattern != "glider.rle" {
		t.Errorf("pattern = %q", config.Pattern)
	}
	if want := DefaultConfig(); config.PatternDir != want.PatternDir || config.MaxGenerations != want.MaxGenerations {
		t.Error("unset fields lost their defaults")
	}
}

func TestLoadConfigRejectsSchemaViolations(t *testing.T) {
	for name, body := range map[string]string{
		"negative interval": `{"step_interval_ms": -1}`,
		"wrong type":        `{"use_parallel": "yes"}`,
		"unknown field":     `{"grid_width": 60}`,
	} {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if config != DefaultConfig() {
		t.Fatal("defaults not returned alongside the error")
	}
}

func TestWorkerCount(t *testing.T) {
	if got := (Config{Workers: 3}).WorkerCount(); got != 3 {
		t.Errorf("explicit workers = %d", got)
	}
	if got := (Config{}).WorkerCount(); got < 1 {
		t.Errorf("default workers = %d", got)
	}
}

func TestBindFlags(t *testing.T) {
	config := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	config.Bind(fs)
	if err := fs.Parse([]string{"-interval", "5", "-pattern", "acorn.cells", "-parallel=false"}); err != nil {
		t.Fatal(err)
	}
	if config.StepIntervalMS != 5 || config.Pattern != "acorn.cells" || config.UseParallel {
		t.Fatalf("flags not applied: %+v", config)
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 400, 100*time.Millisecond)
	if s.AveragePopulation != 100 || s.GenerationsPerSecond != 10 {
		t.Fatalf("first update: %+v", s)
	}
	s.Update(2, 200, 400, 0)
	if s.AveragePopulation != 110 || s.TotalGenerations != 2 || s.Population != 200 {
		t.Fatalf("second update: %+v", s)
	}
}
