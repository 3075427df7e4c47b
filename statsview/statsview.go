// Package statsview runs a local HTTP server with live runtime statistics
// of the simulator process: heap, goroutines and GC charts, plus the
// standard pprof endpoints.
//
// After launch, charts are at
//
//	http://<addr>/debug/statsview
//
// and pprof at
//
//	http://<addr>/debug/pprof/
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is the listen address used when none is given.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// URL returns the chart page address for a server listening on addr.
func URL(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	return "http://" + addr + path
}

// Launch starts the stats server on a new goroutine and writes its URL to
// output.
func Launch(addr string, output io.Writer) {
	if addr == "" {
		addr = DefaultAddress
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	_, _ = fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
}
