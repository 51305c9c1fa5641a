package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
)

// HouseUnknown is the wire form of an undetermined house.
const HouseUnknown = "N/A"

// TrimPosition cuts an arc string before its first minute mark, so
// "10° 22' 33''" becomes "10° 22". Input without a mark is returned as is.
func TrimPosition(s string) string {
	i := strings.IndexByte(s, '\'')
	if i == -1 {
		return s
	}
	return s[:i]
}

// FormatOrb renders an orb with exactly two decimals.
func FormatOrb(orb float64) string {
	return strconv.FormatFloat(orb, 'f', 2, 64)
}

// LabelWithPosition renders "<Label> at <D° M' S''> <Sign>".
func LabelWithPosition(e domain.Entity) string {
	return fmt.Sprintf("%s at %s %s", e.Label(), e.Position.Formatted, e.Position.Sign)
}

// HouseValue is a house number that serializes as "N/A" when unset.
type HouseValue struct {
	Number int
	Known  bool
}

// HouseOf converts an optional entity house.
func HouseOf(h *int) HouseValue {
	if h == nil {
		return HouseValue{}
	}
	return HouseValue{Number: *h, Known: true}
}

func (h HouseValue) MarshalJSON() ([]byte, error) {
	if !h.Known {
		return json.Marshal(HouseUnknown)
	}
	return json.Marshal(h.Number)
}

func (h *HouseValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != HouseUnknown {
			return fmt.Errorf("unexpected house %q", s)
		}
		*h = HouseValue{}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*h = HouseValue{Number: n, Known: true}
	return nil
}
