package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout for an input hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact for a scene hash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	Kind          string  `json:"kind"` // "radial" or "cluster"
	Algorithm     string  `json:"algorithm,omitempty"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ShowSecondary bool    `json:"show_secondary,omitempty"`
	Seed          uint64  `json:"seed,omitempty"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Background  string  `json:"background,omitempty"`
	NoGrid      bool    `json:"no_grid,omitempty"`
	NoLabels    bool    `json:"no_labels,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Scale       float64 `json:"scale,omitempty"`

	// Cluster view only.
	Filter     string   `json:"filter,omitempty"`
	Threshold  float64  `json:"threshold,omitempty"`
	Collapsed  []string `json:"collapsed,omitempty"`
	Tap        string   `json:"tap,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`
}

// DefaultKeyer hashes key options into flat "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
