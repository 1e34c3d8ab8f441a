// Package render turns graphs and computed layouts into visual output.
//
// Two paths exist:
//
//   - [ResultSVG] draws the engine's own geometry: node boxes and routed
//     edge polylines exactly as the layout computed them. Use this to
//     inspect or ship what the engine produced.
//   - [ToDOT] / [GraphToDOT] / [DOTToSVG] go through Graphviz as an
//     independent reference rendering, useful for comparing the engine's
//     result against a second opinion or for feeding external DOT tooling.
//
// Graphviz rendering requires no system installation; it uses the embedded
// WASM build from goccy/go-graphviz.
package render
