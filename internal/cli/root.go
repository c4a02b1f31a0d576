package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

const longHelp = `Generate pseudo-random geographic coordinates that fall within the land
boundaries of the requested countries, as a location set for a geography
guessing game.

Positional arguments are country names, ISO 3166 codes, or .txt files
containing one country name per line; comma-separated bundles work too.
With no arguments on a terminal, an interactive session asks instead.

The boundary dataset is a Natural Earth admin-0 file in shapefile or
GeoJSON form (--dataset, or ` + EnvDataset + `). The known-country list is a
plain text file (--countries-file, or ` + EnvCountries + `).`

// NewRootCommand builds the guessrset command. interactive enables the
// no-argument prompt session; callers pass false when stdin is not a
// terminal.
func NewRootCommand(stdout, stderr io.Writer, interactive bool) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "guessrset [country|list.txt ...]",
		Short:         "Generate random coordinates inside country boundaries",
		Long:          longHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(stderr, opts.Verbose)
			opts.Inputs = args

			if interactive && len(args) == 0 && cmd.Flags().NFlag() == 0 {
				if err := promptOptions(opts, stderr); err != nil {
					return err
				}
			}

			inv, err := opts.Invocation()
			if err != nil {
				return err
			}
			_, err = Execute(cmd.Context(), inv, stdout, stderr)
			return markInternal(err)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Points, "points", "n", 1, "number of points to generate")
	flags.BoolVarP(&opts.Lucky, "lucky", "l", false, "I'm Feeling Lucky mode: one random country")
	flags.BoolVarP(&opts.ShowLinks, "show-links", "s", false, "print OpenStreetMap links on stderr")
	flags.StringVarP(&opts.OutputPath, "output", "o", "", "also save the JSON document to this file")
	flags.StringVar(&opts.DatasetPath, "dataset", "", "boundary dataset (.shp or .geojson), default "+DefaultDatasetPath)
	flags.StringVar(&opts.CountriesPath, "countries-file", "", "known-country list, default "+DefaultCountriesPath)
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 means time-based")
	flags.IntVar(&opts.Workers, "workers", 0, "parallel sampling workers, 0 means GOMAXPROCS")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.NoProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

// markInternal tags errors that escaped Execute without a semantic exit
// code, so Run can tell them apart from cobra's own flag-parse errors.
func markInternal(err error) error {
	if err == nil {
		return nil
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return err
	}
	return &InvocationError{Code: ExitInternalError, Message: err.Error()}
}
