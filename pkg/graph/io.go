package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jentor/strata/pkg/errors"
)

// ReadJSON decodes a boundary document from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a", "width": 120, "height": 40}],
//	  "edges": [{"from": "a", "to": "b", "label_width": 60}]
//	}
//
// Malformed JSON surfaces as INVALID_FORMAT. Structural validation happens
// later in [Document.ToDAG], not here. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph document")
	}
	return &doc, nil
}

// ImportJSON reads a boundary document from the file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes the document as indented JSON. The output round-trips
// through [ReadJSON].
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode graph document: %w", err)
	}
	return nil
}

// ExportJSON writes the document to a JSON file at path.
func (d *Document) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return d.WriteJSON(f)
}
