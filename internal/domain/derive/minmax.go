package derive

import (
	"errors"
	"fmt"
	"math"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

// ErrUnknownKey is returned when a scale key names no numeric field.
var ErrUnknownKey = errors.New("unknown scale key")

// Scalable keys.
const (
	KeyGDPPerCapita = "gdpPerCapita"
	KeyPercentage   = "percentage"
	KeyPopulation   = "population"
	KeyTFR          = "tfr"
	KeyAthCount     = "AthCount"
	KeyGDP          = "gdp"
	KeyMedalScore   = "medalScore"
	KeyTotalMedals  = "totalMedals"
)

// ScaledPrefix prefixes the name of every scaled value in a Profile.
const ScaledPrefix = "minmax_"

// Scaled value bounds.
const (
	ScaledMin = 1.0
	ScaledMax = 10.0
)

// DefaultScaleKeys are the keys scaled when none are configured.
var DefaultScaleKeys = []string{KeyGDPPerCapita, KeyPercentage, KeyPopulation, KeyTFR, KeyAthCount}

// Profile holds derived values of one entry: gdpPerCapita and one
// minmax_<key> value per scaled key.
type Profile map[string]float64

// GDPPerCapita returns GDP / Population, or 0 when either is missing or the
// population is 0.
func GDPPerCapita(s *model.CountryYearStats) float64 {
	if s.GDP == nil || s.Population == nil || *s.Population == 0 {
		return 0
	}
	return *s.GDP / *s.Population
}

// ValidateKeys checks that every key can be scaled.
func ValidateKeys(keys []string) error {
	for _, k := range keys {
		if _, err := numeric(model.NewCountryYearStats(""), k); err != nil {
			return err
		}
	}
	return nil
}

func numeric(s *model.CountryYearStats, key string) (*float64, error) {
	switch key {
	case KeyGDPPerCapita:
		return model.Float(GDPPerCapita(s)), nil
	case KeyPercentage:
		return s.Percentage, nil
	case KeyPopulation:
		return s.Population, nil
	case KeyTFR:
		return s.TFR, nil
	case KeyAthCount:
		return s.AthCount, nil
	case KeyGDP:
		return s.GDP, nil
	case KeyMedalScore:
		return model.Float(float64(s.MedalScore)), nil
	case KeyTotalMedals:
		return model.Float(float64(s.TotalMedals)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// MinMax rescales each key linearly onto [1,10] across the entries of one
// bucket: 1 + (v - min) * 9 / (max - min). Entries without a usable value,
// and every entry when min equals max, get 1. The bucket is not modified.
func MinMax(bucket model.Bucket, keys []string) (map[string]Profile, error) {
	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}

	type bounds struct{ min, max float64 }
	ranges := make(map[string]bounds, len(keys))
	for _, k := range keys {
		b := bounds{min: math.Inf(1), max: math.Inf(-1)}
		for _, s := range bucket {
			v, _ := numeric(s, k)
			if !usable(v) {
				continue
			}
			b.min = math.Min(b.min, *v)
			b.max = math.Max(b.max, *v)
		}
		ranges[k] = b
	}

	out := make(map[string]Profile, len(bucket))
	for code, s := range bucket {
		p := Profile{KeyGDPPerCapita: GDPPerCapita(s)}
		for _, k := range keys {
			v, _ := numeric(s, k)
			b := ranges[k]
			scaled := ScaledMin
			if usable(v) && b.max != b.min {
				scaled = ScaledMin + (*v-b.min)*((ScaledMax-ScaledMin)/(b.max-b.min))
			}
			p[ScaledPrefix+k] = scaled
		}
		out[code] = p
	}
	return out, nil
}
