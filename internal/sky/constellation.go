package sky

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrEmptyConstellation = errors.New("constellation has no stars")
	ErrLineIndex          = errors.New("line index out of range")
)

// Member is a constellation star in local index order.
type Member struct {
	RA        float64 `json:"rah"`
	Dec       float64 `json:"dec"`
	Magnitude float64 `json:"mag"`
}

// Position returns the member's unit direction.
func (m Member) Position() mgl32.Vec3 {
	return CelestialToCartesian(m.RA, m.Dec)
}

// Constellation is one catalog figure with its member stars and line art.
type Constellation struct {
	Name  string
	Abbr  string
	RA    float64 // centroid, hours
	Dec   float64 // centroid, degrees
	Stars []Member
	Lines [][2]int
}

type constellationRecord struct {
	Name  string   `json:"name"`
	Abbr  string   `json:"abbr"`
	RA    *float64 `json:"rah"`
	Dec   *float64 `json:"dec"`
	Stars []Member `json:"stars"`
	Lines [][2]int `json:"lines"`
}

// MeanDirection is the normalised mean of the member directions.
func (c *Constellation) MeanDirection() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, m := range c.Stars {
		sum = sum.Add(m.Position())
	}
	if sum.Len() == 0 {
		return CelestialToCartesian(c.RA, c.Dec)
	}
	return sum.Normalize()
}

// Segments returns each line as a pair of endpoint directions.
func (c *Constellation) Segments() [][2]mgl32.Vec3 {
	out := make([][2]mgl32.Vec3, len(c.Lines))
	for i, line := range c.Lines {
		out[i] = [2]mgl32.Vec3{c.Stars[line[0]].Position(), c.Stars[line[1]].Position()}
	}
	return out
}

func (r constellationRecord) constellation() (Constellation, error) {
	if r.Name == "" {
		return Constellation{}, errors.New("missing name")
	}
	if len(r.Stars) == 0 {
		return Constellation{}, ErrEmptyConstellation
	}
	for i, line := range r.Lines {
		for _, idx := range line {
			if idx < 0 || idx >= len(r.Stars) {
				return Constellation{}, fmt.Errorf("line %d index %d of %d stars: %w", i, idx, len(r.Stars), ErrLineIndex)
			}
		}
	}

	c := Constellation{
		Name:  r.Name,
		Abbr:  r.Abbr,
		Stars: r.Stars,
		Lines: r.Lines,
	}
	if r.RA != nil && r.Dec != nil {
		c.RA, c.Dec = *r.RA, *r.Dec
	} else {
		c.RA, c.Dec = CartesianToCelestial(c.MeanDirection())
	}
	return c, nil
}

// LoadConstellations decodes and validates a JSON array of constellations.
// A missing centroid is computed from the members.
func LoadConstellations(r io.Reader) ([]Constellation, error) {
	var records []constellationRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode constellations: %w", err)
	}

	out := make([]Constellation, 0, len(records))
	for i, rec := range records {
		c, err := rec.constellation()
		if err != nil {
			if rec.Name != "" {
				return nil, fmt.Errorf("constellation %d (%s): %w", i, rec.Name, err)
			}
			return nil, fmt.Errorf("constellation %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
