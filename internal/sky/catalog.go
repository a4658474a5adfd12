package sky

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/*.json
var defaultData embed.FS

// Catalog is the immutable sky: every star plus the constellations the quiz
// draws from.
type Catalog struct {
	Stars          []Star
	Constellations []Constellation

	byName map[string]int
	byAbbr map[string]int
}

// NewCatalog indexes the given data. Duplicate names are an error.
func NewCatalog(stars []Star, constellations []Constellation) (*Catalog, error) {
	c := &Catalog{
		Stars:          stars,
		Constellations: constellations,
		byName:         make(map[string]int, len(constellations)),
		byAbbr:         make(map[string]int, len(constellations)),
	}
	for i, con := range constellations {
		key := strings.ToLower(con.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate constellation %q", con.Name)
		}
		c.byName[key] = i
		if con.Abbr != "" {
			c.byAbbr[strings.ToLower(con.Abbr)] = i
		}
	}
	return c, nil
}

// Load reads both catalogs from readers.
func Load(stars, constellations io.Reader) (*Catalog, error) {
	s, err := LoadStars(stars)
	if err != nil {
		return nil, err
	}
	c, err := LoadConstellations(constellations)
	if err != nil {
		return nil, err
	}
	return NewCatalog(s, c)
}

// LoadFiles reads the catalogs from disk. An empty path falls back to the
// embedded copy of that file.
func LoadFiles(starsPath, constellationsPath string) (*Catalog, error) {
	stars, err := openData(starsPath, "data/stars.json")
	if err != nil {
		return nil, err
	}
	constellations, err := openData(constellationsPath, "data/constellations.json")
	if err != nil {
		return nil, err
	}
	return Load(stars, constellations)
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return LoadFiles("", "")
}

func openData(path, embedded string) (io.Reader, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = defaultData.ReadFile(embedded)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Lookup finds a constellation by name or abbreviation, ignoring case.
func (c *Catalog) Lookup(name string) (*Constellation, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	i, ok := c.byName[key]
	if !ok {
		i, ok = c.byAbbr[key]
	}
	if !ok {
		return nil, false
	}
	return &c.Constellations[i], true
}

// Names lists constellation names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Constellations))
	for i, con := range c.Constellations {
		names[i] = con.Name
	}
	return names
}

// Brighter returns the stars whose magnitude is at most limit.
func (c *Catalog) Brighter(limit float64) []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Magnitude <= limit {
			out = append(out, s)
		}
	}
	return out
}

// StarsOf returns the catalog stars tagged with abbr.
func (c *Catalog) StarsOf(abbr string) []Star {
	var out []Star
	for _, s := range c.Stars {
		if strings.EqualFold(s.Constellation, abbr) {
			out = append(out, s)
		}
	}
	return out
}
