package countryset

import (
	"sort"

	"github.com/agext/levenshtein"
	"github.com/biter777/countries"
)

// suggestionThreshold is the minimum fuzzy-match score for a "did you mean"
// suggestion. Below it, misspellings are reported without a guess.
const suggestionThreshold = 0.75

// Invalid is a requested name that matched nothing in the catalog.
type Invalid struct {
	Input      string
	Suggestion string // best catalog candidate, "" when none scored high enough
}

// Resolution partitions a request into catalog-canonical valid names and
// invalid leftovers. Both slices are sorted.
type Resolution struct {
	Valid   []string
	Invalid []Invalid
}

// Resolve reconciles requested names against the catalog. Matching order per
// name: exact catalog spelling, case/whitespace-insensitive spelling, ISO
// 3166 alpha-2/alpha-3 code. Valid results are deduplicated.
func (c *Catalog) Resolve(requested []string) Resolution {
	var res Resolution
	seen := make(map[string]bool)

	for _, raw := range requested {
		name, ok := c.match(raw)
		if !ok {
			res.Invalid = append(res.Invalid, Invalid{
				Input:      raw,
				Suggestion: c.suggest(raw),
			})
			continue
		}
		if !seen[name] {
			seen[name] = true
			res.Valid = append(res.Valid, name)
		}
	}

	sort.Strings(res.Valid)
	sort.Slice(res.Invalid, func(i, j int) bool {
		return res.Invalid[i].Input < res.Invalid[j].Input
	})
	return res
}

func (c *Catalog) match(raw string) (string, bool) {
	if name := c.canonical(raw); name != "" {
		return name, true
	}
	// ISO code lookup: accepts "DE", "DEU" and a number of official
	// variants, reconciled back to the catalog spelling.
	if cc := countries.ByName(raw); cc != countries.Unknown {
		if name := c.canonical(cc.String()); name != "" {
			return name, true
		}
	}
	return "", false
}

func (c *Catalog) suggest(raw string) string {
	best := ""
	bestScore := 0.0
	for _, name := range c.names {
		score := levenshtein.Match(normalize(raw), normalize(name), nil)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
