package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validOptions() Options {
	return Options{
		Inputs: []string{"Germany"},
		Points: 1,
	}
}

func TestOptionsInvocation_Defaults(t *testing.T) {
	t.Setenv(EnvDataset, "")
	t.Setenv(EnvCountries, "")

	inv, err := validOptions().Invocation()
	if err != nil {
		t.Fatalf("Invocation failed: %v", err)
	}
	if inv.DatasetPath != DefaultDatasetPath {
		t.Errorf("expected default dataset path, got %q", inv.DatasetPath)
	}
	if inv.CountriesPath != DefaultCountriesPath {
		t.Errorf("expected default countries path, got %q", inv.CountriesPath)
	}
	if inv.Seed == 0 {
		t.Error("seed should be populated when unset")
	}
	if !inv.ShowProgress {
		t.Error("progress should default to on")
	}
}

func TestOptionsInvocation_EnvironmentDefaults(t *testing.T) {
	t.Setenv(EnvDataset, "custom.geojson")
	t.Setenv(EnvCountries, "custom.txt")

	inv, err := validOptions().Invocation()
	if err != nil {
		t.Fatalf("Invocation failed: %v", err)
	}
	if inv.DatasetPath != "custom.geojson" {
		t.Errorf("expected env dataset path, got %q", inv.DatasetPath)
	}
	if inv.CountriesPath != "custom.txt" {
		t.Errorf("expected env countries path, got %q", inv.CountriesPath)
	}
}

func TestOptionsInvocation_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv(EnvDataset, "env.geojson")

	opts := validOptions()
	opts.DatasetPath = "flag.geojson"
	inv, err := opts.Invocation()
	if err != nil {
		t.Fatalf("Invocation failed: %v", err)
	}
	if inv.DatasetPath != "flag.geojson" {
		t.Errorf("flag value should win over environment, got %q", inv.DatasetPath)
	}
}

func TestOptionsInvocation_SeedPreserved(t *testing.T) {
	opts := validOptions()
	opts.Seed = 42
	inv, err := opts.Invocation()
	if err != nil {
		t.Fatalf("Invocation failed: %v", err)
	}
	if inv.Seed != 42 {
		t.Errorf("expected seed 42, got %d", inv.Seed)
	}
}

func TestOptionsInvocation_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero points", func(o *Options) { o.Points = 0 }},
		{"negative points", func(o *Options) { o.Points = -3 }},
		{"negative workers", func(o *Options) { o.Workers = -1 }},
		{"no inputs without lucky", func(o *Options) { o.Inputs = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			_, err := opts.Invocation()
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := ExitCodeFor(err); code != ExitInvalidInvocation {
				t.Errorf("expected exit code %d, got %d", ExitInvalidInvocation, code)
			}
		})
	}
}

func TestOptionsInvocation_LuckyNeedsNoInputs(t *testing.T) {
	opts := Options{Lucky: true, Points: 1}
	inv, err := opts.Invocation()
	if err != nil {
		t.Fatalf("Invocation failed: %v", err)
	}
	if len(inv.Requests) != 0 {
		t.Errorf("expected no requests, got %v", inv.Requests)
	}
}

func TestExpandInputs_CommaBundles(t *testing.T) {
	requests, err := expandInputs([]string{"Germany, France", "Japan"})
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}
	expected := []string{"Germany", "France", "Japan"}
	if len(requests) != len(expected) {
		t.Fatalf("expected %d requests, got %v", len(expected), requests)
	}
	for i, want := range expected {
		if requests[i] != want {
			t.Errorf("position %d: expected %q, got %q", i, want, requests[i])
		}
	}
}

func TestExpandInputs_Deduplicates(t *testing.T) {
	requests, err := expandInputs([]string{"Germany", "Germany, France", "France"})
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}
	if len(requests) != 2 {
		t.Errorf("expected 2 unique requests, got %v", requests)
	}
}

func TestExpandInputs_ListFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "europe.txt")
	if err := os.WriteFile(path, []byte("Germany\nFrance\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	requests, err := expandInputs([]string{path + ", Japan"})
	if err != nil {
		t.Fatalf("expandInputs failed: %v", err)
	}
	expected := []string{"Germany", "France", "Japan"}
	if strings.Join(requests, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, requests)
	}
}

func TestExpandInputs_MissingListFile(t *testing.T) {
	_, err := expandInputs([]string{filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Fatal("expected an error for a missing list file")
	}
	if code := ExitCodeFor(err); code != ExitConfigError {
		t.Errorf("expected exit code %d, got %d", ExitConfigError, code)
	}
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid invocation", invalidInvocationf("bad"), ExitInvalidInvocation},
		{"config error", configErrorf("bad"), ExitConfigError},
		{"no coordinates", noCoordinatesErrorf("bad"), ExitNoCoordinates},
		{"untyped", errors.New("boom"), ExitInternalError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
