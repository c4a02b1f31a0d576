// Package countryset holds the known-country catalog and reconciles
// requested country names against it.
package countryset

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
)

// Catalog is the allow-list of country names the generator knows about.
// Names are stored exactly as written in the source file; lookups by
// normalized form are case- and whitespace-insensitive.
type Catalog struct {
	names      []string
	normalized map[string]string
}

// ReadNames reads a country list file: one name per line, blank lines
// skipped, names returned in file order.
func ReadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open country list: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read country list %s: %w", path, err)
	}
	return names, nil
}

// LoadCatalog reads a catalog from a UTF-8 text file with one country name
// per line. Blank lines are skipped.
func LoadCatalog(path string) (*Catalog, error) {
	names, err := ReadNames(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("country list %s contains no names", path)
	}
	return NewCatalog(names)
}

// NewCatalog builds a catalog from an explicit name list. Intended for
// tests and for callers that already hold the list in memory.
func NewCatalog(names []string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	c := &Catalog{normalized: make(map[string]string, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := c.normalized[normalize(name)]; dup {
			continue
		}
		c.names = append(c.names, name)
		c.normalized[normalize(name)] = name
	}
	if len(c.names) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	sort.Strings(c.names)
	return c, nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.names) }

// Names returns all catalog entries, sorted.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Contains reports whether name matches a catalog entry exactly.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.normalized[normalize(name)]
	return ok && c.canonical(name) == name
}

// Random returns one catalog entry chosen uniformly by rng. Used by the
// feeling-lucky mode.
func (c *Catalog) Random(rng *rand.Rand) string {
	return c.names[rng.Intn(len(c.names))]
}

// canonical returns the catalog spelling for name, or "" when there is no
// normalized match.
func (c *Catalog) canonical(name string) string {
	return c.normalized[normalize(name)]
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
