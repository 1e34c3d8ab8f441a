// Package pipeline wires the layout engine to its surroundings: document
// decoding, result caching, observability hooks, and structured logging.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: validate the boundary document and construct the working graph
//  2. Layout: run the layered engine to produce final geometry
//
// The CLI and the HTTP API both execute pipelines through a [Runner], which
// centralizes cache lookups so identical requests never recompute a layout.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document: doc,
//	    Config:   layout.DefaultConfig(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Layout.Width, result.Layout.Height)
package pipeline

import (
	"time"

	"github.com/jentor/strata/pkg/errors"
	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/layout"
)

// DefaultCacheTTL bounds how long cached layout results stay valid. Layouts
// are pure functions of their input, so this mainly caps disk usage for the
// file cache.
const DefaultCacheTTL = 24 * time.Hour

// Options configures one pipeline execution.
type Options struct {
	// Document is the boundary graph to lay out. Required.
	Document *graph.Document

	// Config tunes the layout engine. The zero value is replaced with
	// [layout.DefaultConfig].
	Config layout.Config

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration

	// SkipCache forces recomputation even on a cache hit.
	SkipCache bool
}

// ValidateAndSetDefaults checks required fields and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Document == nil {
		return errors.New(errors.ErrCodeInvalidGraph, "no graph document provided")
	}
	if o.Config == (layout.Config{}) {
		o.Config = layout.DefaultConfig()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Stats captures measurements from one pipeline execution.
type Stats struct {
	NodeCount  int           `json:"node_count"`
	EdgeCount  int           `json:"edge_count"`
	LayoutTime time.Duration `json:"layout_time"`
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// Layout is the computed geometry.
	Layout *layout.Result `json:"layout"`

	// DocHash identifies the input document; useful as a stable reference
	// for stored layouts.
	DocHash string `json:"doc_hash"`

	// CacheHit reports whether Layout came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Stats holds execution measurements. Zero when CacheHit is true.
	Stats Stats `json:"stats"`
}
