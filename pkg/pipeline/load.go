package pipeline

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/radialflow/pkg/cache"
	"github.com/matzehuels/radialflow/pkg/cluster"
	rfio "github.com/matzehuels/radialflow/pkg/io"
	"github.com/matzehuels/radialflow/pkg/radial"
)

// LoadRecords returns the inline records or reads them from opts.Input.
func LoadRecords(opts Options) ([]radial.Record, error) {
	if len(opts.Records) > 0 {
		return opts.Records, nil
	}
	return rfio.ImportRecords(opts.Input)
}

// LoadElements returns the inline elements or reads them from opts.Input.
// Record files are converted to elements.
func LoadElements(opts Options) ([]cluster.Element, error) {
	if len(opts.Elements) > 0 {
		if err := cluster.Validate(opts.Elements); err != nil {
			return nil, err
		}
		return opts.Elements, nil
	}
	return rfio.ImportElements(opts.Input)
}

// HashRecords returns a content hash of records for cache keys.
func HashRecords(records []radial.Record) string {
	data, _ := json.Marshal(records)
	return cache.Hash(data)
}

// HashElements returns a content hash of elements for cache keys.
func HashElements(elements []cluster.Element) string {
	data, _ := json.Marshal(elements)
	return cache.Hash(data)
}
