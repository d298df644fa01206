// Package inspect serves a devtools HTTP API for a scheduler rendering
// into an in-memory host tree.
//
// Routes:
//
//	GET  /healthz                     liveness
//	GET  /tree                        host tree snapshot (JSON)
//	GET  /tree.txt                    host tree outline (text)
//	GET  /tree.html                   host tree as HTML with data-node markers
//	GET  /fibers                      committed fiber tree (JSON)
//	POST /nodes/{id}/events/{event}   dispatch an event, then settle
//	GET  /ws                          live stream of commits (WebSocket)
//	GET  /metrics                     Prometheus metrics, if a gatherer is set
//
// The Server owns the scheduler. Every request that touches it runs under
// one mutex and drives pending passes to completion before answering, so
// the host tree a client sees is always a committed one.
package inspect
