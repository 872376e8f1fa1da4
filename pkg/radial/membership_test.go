package radial

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// scenarioA is two primaries sharing s1 with one private reference each.
func scenarioA() []Record {
	return []Record{
		{Primary: "p1", Refs: []string{"s1", "s2"}},
		{Primary: "p2", Refs: []string{"s1", "s3"}},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    map[string]Tier
	}{
		{
			name:    "shared reference is core",
			records: scenarioA(),
			want: map[string]Tier{
				"p1": TierPrimary, "p2": TierPrimary,
				"s1": TierCore, "s2": TierSecondary, "s3": TierSecondary,
			},
		},
		{
			name: "repeated reference from one primary stays secondary",
			records: []Record{
				{Primary: "p1", Refs: []string{"s1", "s1"}},
			},
			want: map[string]Tier{"p1": TierPrimary, "s1": TierSecondary},
		},
		{
			name: "repeated primary merges references",
			records: []Record{
				{Primary: "p1", Refs: []string{"s1"}},
				{Primary: "p1", Refs: []string{"s1", "s2"}},
			},
			want: map[string]Tier{"p1": TierPrimary, "s1": TierSecondary, "s2": TierSecondary},
		},
		{
			name: "primary referenced by others stays primary",
			records: []Record{
				{Primary: "p1", Refs: []string{"p2"}},
				{Primary: "p2", Refs: []string{"s1"}},
				{Primary: "p3", Refs: []string{"p2"}},
			},
			want: map[string]Tier{"p1": TierPrimary, "p2": TierPrimary, "p3": TierPrimary, "s1": TierSecondary},
		},
		{
			name:    "empty input",
			records: nil,
			want:    map[string]Tier{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.records)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMembershipOrder(t *testing.T) {
	m := NewMembership([]Record{
		{Primary: "b", Refs: []string{"z", "y"}},
		{Primary: "a", Refs: []string{"y", "x", "z"}},
		{Primary: "c", Refs: []string{"x"}},
	})

	if got, want := m.Primaries(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Primaries() = %v, want %v", got, want)
	}
	if got, want := m.Refs("a"), []string{"y", "x", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Refs(a) = %v, want %v", got, want)
	}
	if got, want := m.Referrers("x"), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Referrers(x) = %v, want %v", got, want)
	}
	// first-seen order over the whole input: z, y, x
	if got, want := m.Tiered(TierCore), []string{"z", "y", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tiered(core) = %v, want %v", got, want)
	}
	if _, ok := m.TierOf("missing"); ok {
		t.Error("TierOf(missing) should report unknown")
	}
}

func TestMembershipReturnsCopies(t *testing.T) {
	m := NewMembership(scenarioA())
	refs := m.Refs("p1")
	refs[0] = "mutated"
	if got := m.Refs("p1")[0]; got != "s1" {
		t.Errorf("Refs(p1)[0] = %q after caller mutation, want s1", got)
	}
}

func TestTierText(t *testing.T) {
	for _, tier := range []Tier{TierCore, TierPrimary, TierSecondary} {
		b, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tier, err)
		}
		var back Tier
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != tier {
			t.Errorf("round trip %v -> %q -> %v", tier, b, back)
		}
	}
	if _, err := ParseTier("outer"); err == nil {
		t.Error("ParseTier(outer) should fail")
	}
}

// genRecords builds records with up to 6 primaries over 8 possible refs.
func genRecords() gopter.Gen {
	return gen.SliceOfN(6, gen.SliceOf(gen.IntRange(0, 7))).Map(func(rows [][]int) []Record {
		out := make([]Record, len(rows))
		for i, row := range rows {
			out[i].Primary = fmt.Sprintf("p%d", i)
			for _, r := range row {
				out[i].Refs = append(out[i].Refs, fmt.Sprintf("s%d", r))
			}
		}
		return out
	})
}

func TestTierProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("core iff referenced by more than one primary", prop.ForAll(
		func(records []Record) bool {
			m := NewMembership(records)
			for id, tier := range m.Classify() {
				if m.IsPrimary(id) {
					if tier != TierPrimary {
						return false
					}
					continue
				}
				if (tier == TierCore) != (len(m.Referrers(id)) > 1) {
					return false
				}
			}
			return true
		},
		genRecords(),
	))

	properties.Property("every entity gets exactly one tier", prop.ForAll(
		func(records []Record) bool {
			m := NewMembership(records)
			seen := map[string]int{}
			for _, tier := range []Tier{TierCore, TierPrimary, TierSecondary} {
				for _, id := range m.Tiered(tier) {
					seen[id]++
				}
			}
			classes := m.Classify()
			if len(seen) != len(classes) {
				return false
			}
			for id, n := range seen {
				if n != 1 {
					return false
				}
				if _, ok := classes[id]; !ok {
					return false
				}
			}
			return true
		},
		genRecords(),
	))

	properties.TestingRun(t)
}
