package radial

import "fmt"

// Tier identifies the ring an entity is drawn on.
type Tier int

const (
	TierCore      Tier = iota // outer ring: shared references
	TierPrimary               // middle ring: primary entities
	TierSecondary             // inner ring: references used once
)

var tierNames = map[Tier]string{
	TierCore:      "core",
	TierPrimary:   "primary",
	TierSecondary: "secondary",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier converts a tier name back to a Tier.
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
