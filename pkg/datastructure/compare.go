package datastructure

import (
	"math"
)

// IsUsableWeight. weights that are NaN, infinite or negative never take part in a search
func IsUsableWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
