package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/scene"
)

type sceneDoc struct {
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	ShowSecondary bool      `json:"show_secondary"`
	Filter        bool      `json:"filter"`
	Nodes         []nodeDoc `json:"nodes"`
	Edges         []edgeDoc `json:"edges"`
	Skipped       []string  `json:"skipped,omitempty"`
}

type nodeDoc struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Tier        string  `json:"tier"`
	Color       string  `json:"color"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Highlighted bool    `json:"highlighted,omitempty"`
	Border      string  `json:"border,omitempty"`
	Glow        string  `json:"glow,omitempty"`
}

type edgeDoc struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	SourceSide  string  `json:"source_side"`
	TargetSide  string  `json:"target_side"`
	Core        bool    `json:"core,omitempty"`
	Path        string  `json:"path"`
	Stroke      string  `json:"stroke"`
	Width       float64 `json:"stroke_width"`
	Z           int     `json:"z,omitempty"`
	Hidden      bool    `json:"hidden,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

func toSceneDoc(s *scene.Scene) sceneDoc {
	out := sceneDoc{
		Width:         s.Width,
		Height:        s.Height,
		ShowSecondary: s.ShowSecondary,
		Filter:        s.Filter,
		Nodes:         make([]nodeDoc, len(s.Nodes)),
		Edges:         make([]edgeDoc, len(s.Edges)),
		Skipped:       s.Skipped,
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = nodeDoc{
			ID:          n.ID,
			Label:       n.Label,
			Tier:        n.Tier.String(),
			Color:       n.Color,
			X:           n.Rect.X,
			Y:           n.Rect.Y,
			Width:       n.Rect.Width,
			Height:      n.Rect.Height,
			Highlighted: n.Style.Highlighted,
			Border:      n.Style.Border,
			Glow:        n.Style.Glow,
		}
	}
	for i, e := range s.Edges {
		out.Edges[i] = edgeDoc{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			SourceSide:  e.Path.SourceSide.String(),
			TargetSide:  e.Path.TargetSide.String(),
			Core:        e.Core,
			Path:        e.Path.D,
			Stroke:      e.Style.Stroke,
			Width:       e.Style.Width,
			Z:           e.Style.Z,
			Hidden:      e.Style.Hidden,
			Highlighted: e.Style.Highlighted,
		}
	}
	return out
}

// MarshalScene encodes a scene as indented JSON.
func MarshalScene(s *scene.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(toSceneDoc(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteScene encodes a scene as JSON to w.
func WriteScene(s *scene.Scene, w io.Writer) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// MarshalElements encodes an element list as indented JSON. The output can
// be read back with [ReadElements].
func MarshalElements(elements []cluster.Element) ([]byte, error) {
	if elements == nil {
		elements = []cluster.Element{}
	}
	data, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode elements: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteElements encodes an element list as JSON to w.
func WriteElements(elements []cluster.Element, w io.Writer) error {
	data, err := MarshalElements(elements)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes data to path atomically: it writes a uniquely named
// temporary file in the same directory and renames it into place.
// Missing parent directories are created.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
