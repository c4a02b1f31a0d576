package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/schollz/progressbar/v3"

	"guessrset/internal/countryset"
	"guessrset/internal/dataset"
	"guessrset/internal/geo"
	"guessrset/internal/report"
)

// Result is the outcome of one generation run.
type Result struct {
	ExitCode   int
	Samples    []geo.Sample
	Resolution countryset.Resolution
}

// Execute maps a canonical Invocation to a generation run.
//
// Responsibilities:
//   - Load the country catalog and resolve the requested names.
//   - Load the boundary dataset and select the valid countries.
//   - Generate points (parallel map over independent sampling tasks).
//   - Emit the JSON document on stdout; links, name reports and diagnostics
//     go to stderr. Optionally persist the document.
//   - Translate outcomes to semantic exit codes; a panic is recovered and
//     mapped to ExitInternalError.
func Execute(ctx context.Context, inv Invocation, stdout, stderr io.Writer) (res Result, execErr error) {
	res.ExitCode = ExitInternalError
	defer func() {
		if r := recover(); r != nil {
			res.ExitCode = ExitInternalError
			execErr = fmt.Errorf("panic: %v", r)
		}
	}()

	catalog, err := countryset.LoadCatalog(inv.CountriesPath)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, configErrorf("loading country list: %v", err)
	}

	requests := inv.Requests
	if inv.Lucky {
		rng := rand.New(rand.NewSource(inv.Seed))
		requests = []string{catalog.Random(rng)}
		slog.Info("feeling lucky", "country", requests[0])
	}

	res.Resolution = catalog.Resolve(requests)
	if len(res.Resolution.Valid) == 0 {
		printNameReport(stderr, res.Resolution)
		res.ExitCode = ExitConfigError
		return res, configErrorf("no valid countries specified")
	}

	world, err := dataset.Load(inv.DatasetPath)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, configErrorf("loading world dataset: %v", err)
	}
	slog.Debug("dataset loaded", "path", inv.DatasetPath, "features", world.Len())

	features, err := world.Select(res.Resolution.Valid)
	if err != nil {
		res.ExitCode = ExitConfigError
		return res, configErrorf("%v", err)
	}

	candidates := make([]geo.Candidate, 0, len(features))
	for _, f := range features {
		candidates = append(candidates, geo.Candidate{Name: f.Name, Geometry: f.Geometry})
	}
	sampler, err := geo.NewSampler(candidates, inv.Seed, inv.Workers)
	if err != nil {
		return res, err
	}

	samples, err := sampler.Generate(ctx, inv.Points, newProgressObserver(stderr, inv))
	if err != nil {
		return res, err
	}
	res.Samples = samples

	if len(samples) == 0 {
		res.ExitCode = ExitNoCoordinates
		return res, noCoordinatesErrorf("no coordinates generated, check your input and try again")
	}

	doc := report.New(samples)
	data, err := doc.MarshalIndented()
	if err != nil {
		return res, err
	}
	fmt.Fprintln(stdout, string(data))

	if inv.OutputPath != "" {
		if err := doc.Save(inv.OutputPath); err != nil {
			res.ExitCode = ExitConfigError
			return res, configErrorf("saving coordinates to %s: %v", inv.OutputPath, err)
		}
		fmt.Fprintf(stderr, "Coordinates saved to %s\n", inv.OutputPath)
	}

	fmt.Fprintln(stderr)
	if inv.ShowLinks {
		fmt.Fprintln(stderr, "OpenStreetMap links:")
		for _, s := range samples {
			fmt.Fprintln(stderr, report.OSMLink(s))
		}
		fmt.Fprintln(stderr)
	}
	printNameReport(stderr, res.Resolution)

	if spread, ok := report.SpreadOf(samples); ok {
		slog.Debug("set spread",
			"points", len(samples),
			"mean_km", fmt.Sprintf("%.1f", spread.MeanKm),
			"max_km", fmt.Sprintf("%.1f", spread.MaxKm))
	}

	res.ExitCode = ExitSuccess
	return res, nil
}

// newProgressObserver builds the per-point observer: it advances the
// progress bar and logs sampling failures. A nil bar (progress disabled or
// stderr not a terminal) still logs failures.
func newProgressObserver(stderr io.Writer, inv Invocation) geo.Observer {
	var bar *progressbar.ProgressBar
	if inv.ShowProgress && isTerminal(stderr) {
		bar = progressbar.NewOptions(inv.Points,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("generating coordinates"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	return func(s *geo.Sample, err error) {
		if err != nil {
			slog.Error("point skipped", "err", err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
}

func printNameReport(w io.Writer, r countryset.Resolution) {
	if len(r.Valid) > 0 {
		fmt.Fprintf(w, "Valid countries: %s\n", strings.Join(r.Valid, ", "))
	}
	if len(r.Invalid) > 0 {
		parts := make([]string, 0, len(r.Invalid))
		for _, inv := range r.Invalid {
			if inv.Suggestion != "" {
				parts = append(parts, fmt.Sprintf("%s (did you mean %s?)", inv.Input, inv.Suggestion))
			} else {
				parts = append(parts, inv.Input)
			}
		}
		fmt.Fprintf(w, "Invalid countries: %s\n", strings.Join(parts, ", "))
	}
}
