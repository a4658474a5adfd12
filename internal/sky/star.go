package sky

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Star is one catalog entry. Optional text fields are empty when the record
// omits them; Temperature is 0 when unknown.
type Star struct {
	RA            float64 // hours
	Dec           float64 // degrees
	Magnitude     float64
	HR            int
	Temperature   float64 // kelvin
	Constellation string  // IAU abbreviation
	Flamsteed     string
	Bayer         string
	Name          string

	Position mgl32.Vec3
}

// starRecord mirrors the Yale Bright Star JSON layout, where every value is a
// string.
type starRecord struct {
	RA  string  `json:"RA"`
	Dec string  `json:"Dec"`
	V   string  `json:"V"`
	HR  string  `json:"HR"`
	K   *string `json:"K"`
	C   *string `json:"C"`
	F   *string `json:"F"`
	B   *string `json:"B"`
	N   *string `json:"N"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r starRecord) star() (Star, error) {
	ra, err := ParseRightAscension(r.RA)
	if err != nil {
		return Star{}, err
	}
	dec, err := ParseDeclination(r.Dec)
	if err != nil {
		return Star{}, err
	}
	if r.V == "" {
		return Star{}, fmt.Errorf("missing magnitude")
	}
	mag, err := strconv.ParseFloat(r.V, 64)
	if err != nil {
		return Star{}, fmt.Errorf("magnitude %q: %w", r.V, err)
	}

	star := Star{
		RA:            ra,
		Dec:           dec,
		Magnitude:     mag,
		Constellation: deref(r.C),
		Flamsteed:     deref(r.F),
		Bayer:         deref(r.B),
		Name:          deref(r.N),
		Position:      CelestialToCartesian(ra, dec),
	}
	if r.HR != "" {
		if star.HR, err = strconv.Atoi(r.HR); err != nil {
			return Star{}, fmt.Errorf("HR %q: %w", r.HR, err)
		}
	}
	if k := deref(r.K); k != "" {
		if star.Temperature, err = strconv.ParseFloat(k, 64); err != nil {
			return Star{}, fmt.Errorf("temperature %q: %w", k, err)
		}
	}
	return star, nil
}

// LoadStars decodes a JSON array of star records. The first malformed
// record aborts the load.
func LoadStars(r io.Reader) ([]Star, error) {
	var records []starRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode stars: %w", err)
	}

	stars := make([]Star, 0, len(records))
	for i, rec := range records {
		star, err := rec.star()
		if err != nil {
			return nil, fmt.Errorf("star %d: %w", i, err)
		}
		stars = append(stars, star)
	}
	return stars, nil
}

// Label returns the most readable designation available.
func (s Star) Label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Bayer != "" && s.Constellation != "":
		return s.Bayer + " " + s.Constellation
	case s.Flamsteed != "" && s.Constellation != "":
		return s.Flamsteed + " " + s.Constellation
	case s.HR != 0:
		return "HR " + strconv.Itoa(s.HR)
	}
	return ""
}
