// Package devtools serves a live view of a view tree during development.
//
// The server renders the current document, dumps the node tree with the
// engine's side state as JSON, streams lifecycle events over a WebSocket and
// exposes Prometheus metrics:
//
//	GET  /                  rendered document with the event log script
//	GET  /api/tree          node tree with mounted flags and hook interest
//	GET  /_viewtree/events  WebSocket stream of engine events
//	GET  /metrics           Prometheus metrics, when a gatherer is set
//	POST /api/{action}      runs a registered action against the tree
//
// The engine is not safe for concurrent use, so every access goes through
// Tree.Do, which serializes handlers and actions.
package devtools
