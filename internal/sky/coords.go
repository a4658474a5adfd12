package sky

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var raMarks = strings.NewReplacer("h", " ", "m", " ", "s", " ", ":", " ")

var decMarks = strings.NewReplacer(
	"°", " ", "d", " ", ":", " ",
	"′", " ", "'", " ",
	"″", " ", "\"", " ",
)

// splitSexagesimal turns "12 34 56.7" into up to three non-negative numbers.
// Only the last field may carry a fraction.
func splitSexagesimal(text string) ([3]float64, error) {
	var out [3]float64
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 3 {
		return out, fmt.Errorf("expected 1 to 3 fields, got %d", len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, fmt.Errorf("field %q: %w", f, err)
		}
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return out, fmt.Errorf("field %q out of range", f)
		}
		if i < len(fields)-1 && v != math.Trunc(v) {
			return out, fmt.Errorf("field %q must be whole", f)
		}
		out[i] = v
	}
	if out[1] >= 60 || out[2] >= 60 {
		return out, fmt.Errorf("minutes and seconds must be below 60")
	}
	return out, nil
}

// ParseRightAscension reads "05h 55m 10.3s" style text and returns hours.
func ParseRightAscension(text string) (float64, error) {
	parts, err := splitSexagesimal(raMarks.Replace(strings.TrimSpace(text)))
	if err != nil {
		return 0, fmt.Errorf("right ascension %q: %w", text, err)
	}
	hours := parts[0] + parts[1]/60 + parts[2]/3600
	if hours >= 24 {
		return 0, fmt.Errorf("right ascension %q: must be below 24h", text)
	}
	return hours, nil
}

// ParseDeclination reads "+07° 24′ 25″" style text and returns degrees.
// ASCII ' and " are accepted for minutes and seconds, as is a Unicode minus.
func ParseDeclination(text string) (float64, error) {
	body := strings.TrimSpace(text)
	sign := 1.0
	switch {
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	case strings.HasPrefix(body, "-"):
		sign, body = -1, body[1:]
	case strings.HasPrefix(body, "−"):
		sign, body = -1, strings.TrimPrefix(body, "−")
	}

	parts, err := splitSexagesimal(decMarks.Replace(body))
	if err != nil {
		return 0, fmt.Errorf("declination %q: %w", text, err)
	}
	degrees := parts[0] + parts[1]/60 + parts[2]/3600
	if degrees > 90 {
		return 0, fmt.Errorf("declination %q: beyond the pole", text)
	}
	return sign * degrees, nil
}

// CelestialToCartesian places a direction on the unit sphere. Y points at
// the north celestial pole and RA 0h lies on +X, growing toward -Z.
func CelestialToCartesian(raHours, decDegrees float64) mgl32.Vec3 {
	ra := raHours * math.Pi / 12
	dec := decDegrees * math.Pi / 180
	return mgl32.Vec3{
		float32(math.Cos(dec) * math.Cos(ra)),
		float32(math.Sin(dec)),
		float32(-math.Cos(dec) * math.Sin(ra)),
	}
}

// CartesianToCelestial is the inverse of CelestialToCartesian. v need not be
// normalised; the zero vector maps to 0h, 0°.
func CartesianToCelestial(v mgl32.Vec3) (raHours, decDegrees float64) {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return 0, 0
	}
	decDegrees = math.Asin(y/r) * 180 / math.Pi
	raHours = math.Atan2(-z, x) * 12 / math.Pi
	if raHours < 0 {
		raHours += 24
	}
	return raHours, decDegrees
}
