package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"guessrset/internal/countryset"
)

const (
	ExitSuccess           = 0
	ExitNoCoordinates     = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// Defaults and environment keys for the two data files. Environment values
// are applied as flag defaults, so flags always win.
const (
	DefaultDatasetPath   = "ne_10m_admin_0_countries.shp"
	DefaultCountriesPath = "world.txt"

	EnvDataset   = "GUESSRSET_DATASET"
	EnvCountries = "GUESSRSET_COUNTRIES"
)

// Options holds raw flag and prompt values exactly as the user gave them.
type Options struct {
	Inputs        []string // country names or .txt list files
	Points        int
	Lucky         bool
	ShowLinks     bool
	OutputPath    string
	DatasetPath   string
	CountriesPath string
	Seed          int64
	Workers       int
	Verbose       bool
	NoProgress    bool
}

// Invocation is the fully canonicalized, validated description of a run.
// Requests are expanded (list files read, comma lists split) but not yet
// validated against the catalog; that needs the catalog itself.
type Invocation struct {
	Requests      []string
	Points        int
	Lucky         bool
	ShowLinks     bool
	OutputPath    string
	DatasetPath   string
	CountriesPath string
	Seed          int64
	Workers       int
	ShowProgress  bool
}

// InvocationError carries a semantic exit code across the CLI boundary.
type InvocationError struct {
	Code    int
	Message string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{Code: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...any) error {
	return &InvocationError{Code: ExitConfigError, Message: fmt.Sprintf(format, args...)}
}

func noCoordinatesErrorf(format string, args ...any) error {
	return &InvocationError{Code: ExitNoCoordinates, Message: fmt.Sprintf(format, args...)}
}

// ExitCodeFor extracts the semantic exit code from an error. Unknown errors
// map to ExitInternalError.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil && invErr.Code != 0 {
		return invErr.Code
	}
	return ExitInternalError
}

// Invocation canonicalizes raw options into a validated Invocation.
//
// Expansion rules for input items: items may be comma-separated bundles;
// anything ending in ".txt" is read as a country list file; everything else
// is a country name. A missing list file is a config error, not an invalid
// invocation, because the arguments themselves were well-formed.
func (o Options) Invocation() (Invocation, error) {
	if o.Points < 1 {
		return Invocation{}, invalidInvocationf("--points must be at least 1 (got %d)", o.Points)
	}
	if o.Workers < 0 {
		return Invocation{}, invalidInvocationf("--workers must not be negative (got %d)", o.Workers)
	}
	if !o.Lucky && len(o.Inputs) == 0 {
		return Invocation{}, invalidInvocationf("no countries requested: pass country names, .txt list files, or --lucky")
	}

	requests, err := expandInputs(o.Inputs)
	if err != nil {
		return Invocation{}, err
	}

	inv := Invocation{
		Requests:      requests,
		Points:        o.Points,
		Lucky:         o.Lucky,
		ShowLinks:     o.ShowLinks,
		OutputPath:    strings.TrimSpace(o.OutputPath),
		DatasetPath:   o.DatasetPath,
		CountriesPath: o.CountriesPath,
		Seed:          o.Seed,
		Workers:       o.Workers,
		ShowProgress:  !o.NoProgress,
	}
	if inv.DatasetPath == "" {
		inv.DatasetPath = envOr(EnvDataset, DefaultDatasetPath)
	}
	if inv.CountriesPath == "" {
		inv.CountriesPath = envOr(EnvCountries, DefaultCountriesPath)
	}
	if inv.Seed == 0 {
		inv.Seed = time.Now().UnixNano()
	}
	return inv, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func expandInputs(inputs []string) ([]string, error) {
	var requests []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		requests = append(requests, name)
	}

	for _, input := range inputs {
		for _, item := range strings.Split(input, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if strings.HasSuffix(item, ".txt") {
				names, err := countryset.ReadNames(item)
				if err != nil {
					return nil, configErrorf("reading country list %s: %v", item, err)
				}
				for _, name := range names {
					add(name)
				}
				continue
			}
			add(item)
		}
	}
	return requests, nil
}
