package metrics

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/lintang-b-s/routeplanner/pkg"
	"github.com/lintang-b-s/routeplanner/pkg/engine/routing"
)

// QueryCounter counts route requests per transport mode. It is registered as a route request observer.
type QueryCounter struct {
	mu     sync.Mutex
	total  int
	byMode map[pkg.TransportMode]int
}

func NewQueryCounter() *QueryCounter {
	return &QueryCounter{
		byMode: make(map[pkg.TransportMode]int),
	}
}

func (qc *QueryCounter) OnRouteRequest(req routing.RouteRequest) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.total++
	qc.byMode[req.Mode]++
}

func (qc *QueryCounter) Total() int {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return qc.total
}

// Snapshot returns the count of every transport mode, including modes never requested.
func (qc *QueryCounter) Snapshot() map[pkg.TransportMode]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	out := make(map[pkg.TransportMode]int, len(qc.byMode))
	for _, mode := range pkg.TransportModes() {
		out[mode] = qc.byMode[mode]
	}
	return out
}

// WriteToFile writes "total <n>" followed by one "<mode> <n>" line per transport mode.
func (qc *QueryCounter) WriteToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	snapshot := qc.Snapshot()
	if _, err := fmt.Fprintf(w, "total %d\n", qc.Total()); err != nil {
		return err
	}
	for _, mode := range pkg.TransportModes() {
		if _, err := fmt.Fprintf(w, "%s %d\n", mode, snapshot[mode]); err != nil {
			return err
		}
	}
	return w.Flush()
}
