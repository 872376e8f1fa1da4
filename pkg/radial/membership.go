package radial

import "slices"

// Record is one input row: a primary entity and the entities it references,
// in order.
type Record struct {
	Primary string   `json:"primary" yaml:"primary"`
	Refs    []string `json:"refs" yaml:"refs"`
}

// Membership is the bipartite primary → reference relation together with its
// inverse. It is built once and never mutated.
type Membership struct {
	primaries []string
	refs      map[string][]string
	referrers map[string][]string
	refOrder  []string
}

// NewMembership indexes records. Repeated primaries are merged in first-seen
// position and repeated references collapse, so every slice the Membership
// returns is duplicate-free and in input order.
func NewMembership(records []Record) *Membership {
	m := &Membership{
		refs:      make(map[string][]string),
		referrers: make(map[string][]string),
	}

	for _, r := range records {
		if _, seen := m.refs[r.Primary]; !seen {
			m.primaries = append(m.primaries, r.Primary)
			m.refs[r.Primary] = nil
		}
		for _, ref := range r.Refs {
			if slices.Contains(m.refs[r.Primary], ref) {
				continue
			}
			m.refs[r.Primary] = append(m.refs[r.Primary], ref)

			if _, seen := m.referrers[ref]; !seen {
				m.refOrder = append(m.refOrder, ref)
			}
			if !slices.Contains(m.referrers[ref], r.Primary) {
				m.referrers[ref] = append(m.referrers[ref], r.Primary)
			}
		}
	}
	return m
}

// Primaries returns primary entity IDs in input order.
func (m *Membership) Primaries() []string { return slices.Clone(m.primaries) }

// Refs returns the references of a primary in input order.
func (m *Membership) Refs(primary string) []string { return slices.Clone(m.refs[primary]) }

// Referrers returns the distinct primaries referencing ref, first-seen first.
func (m *Membership) Referrers(ref string) []string { return slices.Clone(m.referrers[ref]) }

// IsPrimary reports whether id was listed as a primary entity.
func (m *Membership) IsPrimary(id string) bool {
	_, ok := m.refs[id]
	return ok
}

// IsCore reports whether ref is referenced by more than one primary.
// Primary entities are never core.
func (m *Membership) IsCore(ref string) bool {
	return !m.IsPrimary(ref) && len(m.referrers[ref]) > 1
}

// TierOf classifies id. The second result is false for unknown IDs.
func (m *Membership) TierOf(id string) (Tier, bool) {
	if m.IsPrimary(id) {
		return TierPrimary, true
	}
	n, ok := m.referrers[id]
	if !ok {
		return 0, false
	}
	if len(n) > 1 {
		return TierCore, true
	}
	return TierSecondary, true
}

// Tiered returns the IDs of tier t in slot order: primaries in input order,
// references in first-seen order.
func (m *Membership) Tiered(t Tier) []string {
	if t == TierPrimary {
		return m.Primaries()
	}
	var out []string
	for _, ref := range m.refOrder {
		if got, _ := m.TierOf(ref); got == t {
			out = append(out, ref)
		}
	}
	return out
}

// Classify assigns exactly one tier to every known entity.
func (m *Membership) Classify() map[string]Tier {
	out := make(map[string]Tier, len(m.primaries)+len(m.refOrder))
	for _, ref := range m.refOrder {
		out[ref], _ = m.TierOf(ref)
	}
	for _, p := range m.primaries {
		out[p] = TierPrimary
	}
	return out
}

// Classify is a convenience for NewMembership(records).Classify().
func Classify(records []Record) map[string]Tier {
	return NewMembership(records).Classify()
}
