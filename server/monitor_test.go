package server

import (
	"strconv"
	"strings"
	"testing"
)

func TestGoroutineExpectations(t *testing.T) {
	monitors := []runtimeMonitor{
		{},
		{hasHTTP: true},
		{hasHTTP: true, hasTLS: true},
	}
	numExpectations := make([]int, len(monitors))
	for i, m := range monitors {
		var w strings.Builder
		m.writeGoroutineExpectations(&w)
		lines := strings.Split(w.String(), "\n")
		for _, e := range lines {
			if strings.HasPrefix(e, "* ") {
				numExpectations[i]++
			}
		}
		want := strconv.Itoa(numExpectations[i])
		if len(lines) < 2 || !strings.HasPrefix(lines[1], want+" ") {
			t.Errorf("monitor %v: wanted %v goroutine expectations", i, want)
		}
	}
	for i := 1; i < len(numExpectations); i++ {
		if numExpectations[i-1] >= numExpectations[i] {
			t.Errorf("wanted more goroutines to be expected for monitor %v than %v", i, i-1)
		}
	}
}
