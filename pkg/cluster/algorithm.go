package cluster

import (
	"fmt"
	"strings"

	"github.com/matzehuels/radialflow/pkg/errors"
)

// Algorithm selects a layout strategy.
type Algorithm int

const (
	ForceDirectedQuality Algorithm = iota // high quality spring embedder
	ForceDirectedFast                     // multilevel spring embedder for large graphs
	CircularClustered                     // clusters arranged on circles
	Layered                               // hierarchical, edges point down
	ForceDirectedClassic                  // classic Fruchterman-Reingold style
	Random                                // uniform placement inside the viewport
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = ForceDirectedQuality

// DefaultPadding is the margin kept between laid-out nodes and the viewport edge.
const DefaultPadding = 30

var algorithmNames = []string{
	ForceDirectedQuality: "force-directed-quality",
	ForceDirectedFast:    "force-directed-fast",
	CircularClustered:    "circular-clustered",
	Layered:              "layered",
	ForceDirectedClassic: "force-directed-classic",
	Random:               "random",
}

// Names used by browser graph libraries, accepted for compatibility.
var algorithmAliases = map[string]Algorithm{
	"fcose":        ForceDirectedQuality,
	"cose-bilkent": ForceDirectedFast,
	"cise":         CircularClustered,
	"dagre":        Layered,
	"cose":         ForceDirectedClassic,
}

func (a Algorithm) String() string {
	if a >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Algorithms lists every algorithm in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithmNames))
	for i := range out {
		out[i] = Algorithm(i)
	}
	return out
}

// AlgorithmNames lists the canonical algorithm names.
func AlgorithmNames() []string {
	return append([]string(nil), algorithmNames...)
}

// ParseAlgorithm resolves a canonical name or a compatibility alias.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range algorithmNames {
		if name == s {
			return Algorithm(i), nil
		}
	}
	if a, ok := algorithmAliases[s]; ok {
		return a, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAlgorithm,
		"unknown layout algorithm %q (want %s)", s, strings.Join(algorithmNames, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AlgorithmConfig holds the tuning values of one algorithm. Distances are in
// pixels; zero means "engine default".
type AlgorithmConfig struct {
	Algorithm Algorithm
	// Engine is the Graphviz layout engine implementing the algorithm, empty
	// when the algorithm is handled natively.
	Engine          string
	Padding         float64
	NodeSeparation  float64
	IdealEdgeLength float64
	NodeRepulsion   float64
	Gravity         float64
	SpringCoeff     float64
	RankSeparation  float64
	// InterClusterFactor stretches edges that cross cluster boundaries.
	InterClusterFactor float64
	// Randomize seeds the engine with random start positions.
	Randomize bool
}

// ConfigFor returns the tuning values for a.
func ConfigFor(a Algorithm) AlgorithmConfig {
	cfg := AlgorithmConfig{Algorithm: a, Padding: DefaultPadding}
	switch a {
	case ForceDirectedQuality:
		cfg.Engine = "neato"
		cfg.NodeSeparation = 150
		cfg.IdealEdgeLength = 100
		cfg.NodeRepulsion = 4500
		cfg.Gravity = 0.25
	case ForceDirectedFast:
		cfg.Engine = "sfdp"
		cfg.IdealEdgeLength = 50
		cfg.NodeRepulsion = 4500
	case CircularClustered:
		cfg.Engine = "circo"
		cfg.NodeSeparation = 75
		cfg.SpringCoeff = 0.45
		cfg.InterClusterFactor = 1.4
	case Layered:
		cfg.Engine = "dot"
		cfg.NodeSeparation = 50
		cfg.RankSeparation = 50
	case ForceDirectedClassic:
		cfg.Engine = "fdp"
	case Random:
		cfg.Randomize = true
	}
	return cfg
}
