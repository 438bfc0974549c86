// Package controller contains HTTP middlewares and helper handlers used by the
// development analysis stub.
//
// Provided middlewares:
//   - WithCORS: Lets the extension and local pages call the stub and answers preflights.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - Metrics.Wrap: Records request counts and latencies as otel instruments.
//
// Provided helpers:
//   - PprofHandler: Serves net/http/pprof under PprofPath.
package controller
