package aspects

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOrb applies to every aspect type unless configured otherwise.
	DefaultOrb = 1.0
	// FallbackOrb applies to a type missing from a partial table.
	FallbackOrb = 5.0
)

// OrbTable maps each aspect type to its maximum orb in degrees.
type OrbTable map[domain.AspectType]float64

// DefaultOrbs returns a table with every type set to DefaultOrb.
func DefaultOrbs() OrbTable {
	t := make(OrbTable, len(domain.AspectTypes))
	for _, at := range domain.AspectTypes {
		t[at] = DefaultOrb
	}
	return t
}

// Max returns the configured orb for a type.
func (t OrbTable) Max(at domain.AspectType) float64 {
	if orb, ok := t[at]; ok {
		return orb
	}
	return FallbackOrb
}

// With returns a copy of the table with overrides applied.
func (t OrbTable) With(overrides map[string]float64) (OrbTable, error) {
	out := make(OrbTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	for name, orb := range overrides {
		at, ok := domain.ParseAspectType(name)
		if !ok {
			return nil, fmt.Errorf("unknown aspect type %q", name)
		}
		if math.IsNaN(orb) || math.IsInf(orb, 0) || orb < 0 {
			return nil, fmt.Errorf("orb for %s must be a non-negative number", at)
		}
		out[at] = orb
	}
	return out, nil
}

// ParseOrbs reads "type=degrees" pairs separated by commas.
func ParseOrbs(spec string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("orb entry %q is not type=degrees", pair)
		}
		orb, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("orb entry %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = orb
	}
	return out, nil
}

type orbFile struct {
	Orbs map[string]float64 `yaml:"orbs"`
}

// LoadOrbFile reads a YAML document of the form:
//
//	orbs:
//	  conjunction: 8
//	  opposition: 8
func LoadOrbFile(path string) (map[string]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orb file: %w", err)
	}
	var f orbFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse orb file: %w", err)
	}
	return f.Orbs, nil
}
