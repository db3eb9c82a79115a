package routing

import (
	"fmt"
	"strings"
)

type SearchStrategy uint8

const (
	// LINEAR_SCAN selects the next vertex by scanning all unvisited candidates, O(V^2).
	// ties go to the candidate inserted first.
	LINEAR_SCAN SearchStrategy = iota
	// PRIORITY_QUEUE selects the next vertex from a 4-ary min-heap, O((V+E) log V).
	// ties are broken by heap order.
	PRIORITY_QUEUE
)

func (s SearchStrategy) String() string {
	switch s {
	case LINEAR_SCAN:
		return "linear"
	case PRIORITY_QUEUE:
		return "heap"
	default:
		return fmt.Sprintf("SearchStrategy(%d)", uint8(s))
	}
}

func ParseSearchStrategy(s string) (SearchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return LINEAR_SCAN, nil
	case "heap", "pq", "priority_queue":
		return PRIORITY_QUEUE, nil
	default:
		return LINEAR_SCAN, fmt.Errorf("unknown search strategy: %q", s)
	}
}
