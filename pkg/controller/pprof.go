package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofPath is the pattern PprofHandler expects to be mounted on. pprof.Index
// resolves named profiles relative to it.
const PprofPath = "/debug/pprof/"

// PprofHandler returns a handler serving the net/http/pprof endpoints under
// PprofPath.
func PprofHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(PprofPath, pprof.Index)
	mux.HandleFunc(PprofPath+"cmdline", pprof.Cmdline)
	mux.HandleFunc(PprofPath+"profile", pprof.Profile)
	mux.HandleFunc(PprofPath+"symbol", pprof.Symbol)
	mux.HandleFunc(PprofPath+"trace", pprof.Trace)

	return mux
}
