package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// Menu choices for the interactive session.
const (
	choiceEnterCountries = 1
	choiceFeelingLucky   = 2
	choiceWholeCatalog   = 3
)

// promptOptions runs the interactive session used when the tool is invoked
// with no arguments at all. It fills in opts from terminal answers.
func promptOptions(opts *Options, stderr io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(stderr, "1. Enter specific countries")
	fmt.Fprintln(stderr, "2. I'm Feeling Lucky (random country)")
	fmt.Fprintf(stderr, "3. Use all countries from %s\n", opts.countriesPathOrDefault())

	answer, err := line.Prompt("Enter your choice (1, 2, or 3): ")
	if err != nil {
		return promptErr(err)
	}
	choice, err := parseMenuChoice(answer)
	if err != nil {
		fmt.Fprintf(stderr, "%v, defaulting to %s\n", err, opts.countriesPathOrDefault())
		choice = choiceWholeCatalog
	}

	switch choice {
	case choiceEnterCountries:
		answer, err := line.Prompt("Enter country names or text filenames separated by commas: ")
		if err != nil {
			return promptErr(err)
		}
		opts.Inputs = splitCountryInput(answer)
		opts.Lucky = false
	case choiceFeelingLucky:
		opts.Inputs = nil
		opts.Lucky = true
	case choiceWholeCatalog:
		opts.Inputs = []string{opts.countriesPathOrDefault()}
		opts.Lucky = false
	}

	answer, err = line.Prompt("Number of points to generate: ")
	if err != nil {
		return promptErr(err)
	}
	points, err := parsePointCount(answer)
	if err != nil {
		return err
	}
	opts.Points = points

	answer, err = line.Prompt("Show OpenStreetMap links? (y/n): ")
	if err != nil {
		return promptErr(err)
	}
	opts.ShowLinks = parseYesNo(answer)

	answer, err = line.Prompt("Save the coordinates to a file? (y/n): ")
	if err != nil {
		return promptErr(err)
	}
	if parseYesNo(answer) {
		answer, err = line.Prompt("Filename to save the coordinates: ")
		if err != nil {
			return promptErr(err)
		}
		opts.OutputPath = strings.TrimSpace(answer)
	}
	return nil
}

// countriesPathOrDefault resolves the catalog path the same way
// Options.Invocation does: flag, then environment, then built-in default.
// The prompt menu must name the file the run will actually read.
func (o Options) countriesPathOrDefault() string {
	if o.CountriesPath != "" {
		return o.CountriesPath
	}
	return envOr(EnvCountries, DefaultCountriesPath)
}

func promptErr(err error) error {
	if err == liner.ErrPromptAborted || err == io.EOF {
		return invalidInvocationf("interactive session aborted")
	}
	return err
}

func parseMenuChoice(answer string) (int, error) {
	switch strings.TrimSpace(answer) {
	case "1":
		return choiceEnterCountries, nil
	case "2":
		return choiceFeelingLucky, nil
	case "3":
		return choiceWholeCatalog, nil
	default:
		return 0, fmt.Errorf("invalid choice %q", strings.TrimSpace(answer))
	}
}

func parsePointCount(answer string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, invalidInvocationf("invalid number of points %q", strings.TrimSpace(answer))
	}
	if n < 1 {
		return 0, invalidInvocationf("number of points must be at least 1 (got %d)", n)
	}
	return n, nil
}

func parseYesNo(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func splitCountryInput(answer string) []string {
	var items []string
	for _, item := range strings.Split(answer, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
