// Package statsview serves live Go runtime charts (heap, GC, goroutines) over HTTP.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the stats server on addr in its own goroutine.
// The returned function stops it.
func Launch(output io.Writer, addr string) (stop func()) {
	if addr == "" {
		addr = DefaultAddress
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, path)
	return mgr.Stop
}

// URL returns where Launch serves the charts for addr.
func URL(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}
	return "http://" + addr + path
}
