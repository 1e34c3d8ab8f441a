package graph

import (
	"strings"
	"testing"

	"github.com/jentor/strata/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "a", "width": 120, "height": 40},
			{"id": "b", "width": 96, "height": 40}
		],
		"edges": [
			{"from": "a", "to": "b", "label_width": 50, "label_height": 12}
		]
	}`

	doc, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges, want 2, 1", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[0].Width != 120 {
		t.Errorf("node width = %v, want 120", doc.Nodes[0].Width)
	}
	if doc.Edges[0].LabelWidth != 50 {
		t.Errorf("label width = %v, want 50", doc.Edges[0].LabelWidth)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"nodes": [`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got error %v, want code %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestDocumentToDAG(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		wantCode errors.Code
	}{
		{
			name: "valid",
			doc: Document{
				Nodes: []NodeSpec{{ID: "a", Width: 10, Height: 10}, {ID: "b", Width: 10, Height: 10}},
				Edges: []EdgeSpec{{From: "a", To: "b"}},
			},
		},
		{
			name: "duplicate node",
			doc: Document{
				Nodes: []NodeSpec{{ID: "a"}, {ID: "a"}},
			},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name: "empty node ID",
			doc: Document{
				Nodes: []NodeSpec{{ID: ""}},
			},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name: "negative size",
			doc: Document{
				Nodes: []NodeSpec{{ID: "a", Width: -1}},
			},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name: "unknown edge endpoint",
			doc: Document{
				Nodes: []NodeSpec{{ID: "a"}},
				Edges: []EdgeSpec{{From: "a", To: "ghost"}},
			},
			wantCode: errors.ErrCodeUnknownNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.doc.ToDAG()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ToDAG() failed: %v", err)
				}
				if g.NodeCount() != len(tt.doc.Nodes) {
					t.Errorf("got %d nodes, want %d", g.NodeCount(), len(tt.doc.Nodes))
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("got error %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{{ID: "a", Width: 120, Height: 40}, {ID: "b", Width: 96, Height: 40}},
		Edges: []EdgeSpec{{From: "a", To: "b", LabelWidth: 40, LabelHeight: 12}},
	}

	g, err := doc.ToDAG()
	if err != nil {
		t.Fatalf("ToDAG() failed: %v", err)
	}
	back := FromDAG(g)

	if len(back.Nodes) != len(doc.Nodes) || len(back.Edges) != len(doc.Edges) {
		t.Fatalf("round trip lost entries: %+v", back)
	}
	for i, n := range back.Nodes {
		if n != doc.Nodes[i] {
			t.Errorf("node %d: got %+v, want %+v", i, n, doc.Nodes[i])
		}
	}
	if back.Edges[0] != doc.Edges[0] {
		t.Errorf("edge: got %+v, want %+v", back.Edges[0], doc.Edges[0])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{{ID: "x", Width: 10, Height: 10}},
	}
	var buf strings.Builder
	if err := doc.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	got, err := ReadJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "x" {
		t.Errorf("round trip = %+v", got)
	}
}
