package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
	"github.com/matzehuels/radialflow/pkg/radial"
)

// Format is an input or output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension. Unknown
// extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// child is one entry of the demo shape's children list.
type child struct {
	KeyValue string `json:"key_value" yaml:"key_value"`
}

// record accepts both input shapes:
//
//	{"task": "docs1", "children": [{"key_value": "section1"}]}
//	{"primary": "docs1", "refs": ["section1"]}
type record struct {
	Task     string   `json:"task" yaml:"task"`
	Children []child  `json:"children" yaml:"children"`
	Primary  string   `json:"primary" yaml:"primary"`
	Refs     []string `json:"refs" yaml:"refs"`
}

func (r record) toRecord(i int) (radial.Record, error) {
	if r.Task != "" && r.Primary != "" && r.Task != r.Primary {
		return radial.Record{}, errors.New(errors.ErrCodeInvalidInput,
			"record %d: task %q and primary %q disagree", i, r.Task, r.Primary)
	}
	out := radial.Record{Primary: r.Primary}
	if out.Primary == "" {
		out.Primary = r.Task
	}
	if err := errors.ValidateID(out.Primary); err != nil {
		return radial.Record{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d", i)
	}
	for _, c := range r.Children {
		out.Refs = append(out.Refs, c.KeyValue)
	}
	out.Refs = append(out.Refs, r.Refs...)
	for _, ref := range out.Refs {
		if err := errors.ValidateID(ref); err != nil {
			return radial.Record{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d (%s)", i, out.Primary)
		}
	}
	return out, nil
}

// ReadRecords decodes an ordered record list from r. Each record names a
// primary entity ("task" or "primary") and its references ("children" with
// "key_value" entries, or "refs"). An empty list is an error.
//
// ReadRecords does not close r.
func ReadRecords(r io.Reader, format Format) ([]radial.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var raw []record
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON, "":
		err = json.Unmarshal(bytes.TrimSpace(data), &raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records")
	}

	out := make([]radial.Record, len(raw))
	for i, rec := range raw {
		if out[i], err = rec.toRecord(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ImportRecords reads records from a file, choosing the decoder by extension.
func ImportRecords(path string) ([]radial.Record, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadRecords(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadElements decodes a cluster element list from JSON and validates it.
// Elements may omit "group"; edges are recognised by their endpoints.
func ReadElements(r io.Reader) ([]cluster.Element, error) {
	var elems []cluster.Element
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode elements")
	}
	if err := cluster.Validate(elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// ImportElements reads an element list from a JSON file. Files holding
// records instead of elements are converted with [cluster.FromRecords].
func ImportElements(path string) ([]cluster.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if FormatFromPath(path) == FormatJSON && looksLikeElements(data) {
		elems, err := ReadElements(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return elems, nil
	}
	recs, err := ReadRecords(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cluster.FromRecords(recs), nil
}

// looksLikeElements reports whether the first array entry carries a "data"
// object, the marker of the element shape.
func looksLikeElements(data []byte) bool {
	var peek []map[string]json.RawMessage
	if err := json.Unmarshal(data, &peek); err != nil || len(peek) == 0 {
		return false
	}
	_, ok := peek[0]["data"]
	return ok
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
