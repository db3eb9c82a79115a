package routing

import (
	"math"

	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
)

// vertexInfo is the search label of one arena vertex.
type vertexInfo struct {
	dist       float64
	parent     da.Index // predecessor vertex
	parentLink int      // index into the link snapshot of the edge parent->vertex
	visited    bool
}

func newVertexInfos(n int) []vertexInfo {
	infos := make([]vertexInfo, n)
	for i := range infos {
		infos[i] = vertexInfo{
			dist:       math.Inf(1),
			parent:     da.INVALID_INDEX,
			parentLink: -1,
		}
	}
	return infos
}

func (vi *vertexInfo) hasParent() bool {
	return vi.parent != da.INVALID_INDEX
}

func (vi *vertexInfo) update(dist float64, parent da.Index, parentLink int) {
	vi.dist = dist
	vi.parent = parent
	vi.parentLink = parentLink
}
