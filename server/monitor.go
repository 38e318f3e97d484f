package server

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/pprof"
)

// runtimeMonitor writes runtime information about the server.
type runtimeMonitor struct {
	hasHTTP bool
	hasTLS  bool
}

// ServeHTTP writes runtime information to the response.
func (m runtimeMonitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ms := new(runtime.MemStats)
	runtime.ReadMemStats(ms)
	p := pprof.Lookup("goroutine")
	writeMemoryStats(w, ms)
	fmt.Fprintln(w)
	m.writeGoroutineExpectations(w)
	fmt.Fprintln(w)
	writeGoroutineStackTraces(w, p)
}

// writeMemoryStats writes the memory runtime statistics of the server.
func writeMemoryStats(w io.Writer, m *runtime.MemStats) {
	fmt.Fprintln(w, "--- Memory Stats ---")
	fmt.Fprintln(w, "Alloc (bytes on heap)", m.Alloc)
	fmt.Fprintln(w, "TotalAlloc (total heap size)", m.TotalAlloc)
	fmt.Fprintln(w, "Sys (bytes used to run server)", m.Sys)
	fmt.Fprintln(w, "Live object count (Mallocs - Frees)", m.Mallocs-m.Frees)
}

// writeGoroutineExpectations writes a message about the expected goroutines.
func (m runtimeMonitor) writeGoroutineExpectations(w io.Writer) {
	expectations := []string{
		"a goroutine to run the main procedure",
		"a goroutine listening for interrupt/termination signals so the server can stop gracefully",
		"a goroutine to run the https server",
		"a goroutine to write profiling information about goroutines",
	}
	if m.hasHTTP {
		expectations = append(expectations, "a goroutine to run the http server")
	}
	if m.hasTLS {
		expectations = append(expectations, "a goroutine to handle tls connections")
	}
	fmt.Fprintln(w, "--- Goroutine Expectations ---")
	fmt.Fprintf(w, "%d goroutines are expected on an idling server.\n", len(expectations))
	for _, e := range expectations {
		fmt.Fprintln(w, "*", e)
	}
	fmt.Fprintln(w, "Each open connection is served by an additional goroutine.")
}

// writeGoroutineStackTraces writes the goroutine runtime profile's stack traces.
func writeGoroutineStackTraces(w io.Writer, p *pprof.Profile) {
	fmt.Fprintln(w, "--- Goroutine Stack Traces ---")
	p.WriteTo(w, 1)
}
