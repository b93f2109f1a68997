// Package lists provides the controlled option lists consumed by form fields
// and section components. Country and dialing-code data ship as embedded CSV;
// everything else is static. All accessors return copies so callers cannot
// mutate the shared catalog.
package lists

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"sync"
)

//go:embed data/countries.csv data/dial_codes.csv
var dataFS embed.FS

const (
	countriesPath = "data/countries.csv"
	dialCodesPath = "data/dial_codes.csv"
)

// Catalog holds the loaded controlled lists for one process.
type Catalog struct {
	countries []string
	dialCodes map[string]string // country name -> dial code
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog backed by the embedded CSV data. The load
// happens once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		countries, err := dataFS.Open(countriesPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = countries.Close() }()

		dials, err := dataFS.Open(dialCodesPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = dials.Close() }()

		defaultCatalog, defaultErr = Load(countries, dials)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for wiring paths where the embedded data missing is
// a programming error.
func MustDefault() *Catalog {
	cat, err := Default()
	if err != nil {
		panic(err)
	}
	return cat
}

// Load builds a catalog from CSV readers. The countries file carries
// code,name rows; the dial codes file carries country,code rows. Both expect
// a header row.
func Load(countries, dialCodes io.Reader) (*Catalog, error) {
	names, err := readColumn(countries, 1, "countries")
	if err != nil {
		return nil, err
	}

	dials, err := readPairs(dialCodes, "dial codes")
	if err != nil {
		return nil, err
	}

	return &Catalog{countries: names, dialCodes: dials}, nil
}

func readColumn(r io.Reader, col int, what string) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("lists: missing %s reader", what)
	}
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lists: read %s: %w", what, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("lists: %s data is empty", what)
	}
	out := make([]string, 0, len(records)-1)
	seen := map[string]struct{}{}
	for _, rec := range records[1:] {
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		if _, dup := seen[rec[col]]; dup {
			continue
		}
		seen[rec[col]] = struct{}{}
		out = append(out, rec[col])
	}
	return out, nil
}

func readPairs(r io.Reader, what string) (map[string]string, error) {
	if r == nil {
		return nil, fmt.Errorf("lists: missing %s reader", what)
	}
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lists: read %s: %w", what, err)
	}
	out := make(map[string]string, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		out[rec[0]] = rec[1]
	}
	return out, nil
}

// Countries returns the country display names in file order, optionally
// prefixed with an empty sentinel for "not selected".
func (c *Catalog) Countries(includeEmpty bool) []string {
	return withEmpty(c.countries, includeEmpty)
}

// DialCode returns the dialing code for a country name, or "".
func (c *Catalog) DialCode(country string) string {
	return c.dialCodes[country]
}

// DialCodes returns the distinct dialing codes in country order.
func (c *Catalog) DialCodes() []string {
	out := make([]string, 0, len(c.countries))
	seen := map[string]struct{}{}
	for _, country := range c.countries {
		code, ok := c.dialCodes[country]
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func withEmpty(src []string, includeEmpty bool) []string {
	out := make([]string, 0, len(src)+1)
	if includeEmpty {
		out = append(out, "")
	}
	return append(out, src...)
}
