package routing

import (
	"math"

	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/util"
)

type arc struct {
	head da.Index
	link int // index into searchGraph.links
}

// searchGraph is the mode-filtered subgraph of one query. Cities live in an arena and are referred to by
// their index; the arena order is the candidate order, which is also the linear scan tie-break order.
type searchGraph struct {
	cities []da.City
	index  map[string]da.Index
	adj    [][]arc
	links  []da.Link
}

func newSearchGraph(candidates []da.City, links []da.Link, mode pkg.TransportMode) *searchGraph {
	sg := &searchGraph{
		cities: make([]da.City, 0, len(candidates)),
		index:  make(map[string]da.Index, len(candidates)),
		links:  links,
	}
	for _, c := range candidates {
		sg.addVertex(c)
	}
	sg.adj = make([][]arc, len(sg.cities))

	for i, l := range links {
		if !l.HasMode(mode) || !da.IsUsableWeight(l.GetDistance()) {
			continue
		}
		u, okU := sg.index[l.GetFrom().Key()]
		v, okV := sg.index[l.GetTo().Key()]
		if !okU || !okV {
			continue
		}
		sg.adj[u] = append(sg.adj[u], arc{head: v, link: i})
		if u != v {
			sg.adj[v] = append(sg.adj[v], arc{head: u, link: i})
		}
	}
	return sg
}

func (sg *searchGraph) addVertex(c da.City) da.Index {
	if idx, ok := sg.index[c.Key()]; ok {
		return idx
	}
	idx := da.Index(len(sg.cities))
	sg.index[c.Key()] = idx
	sg.cities = append(sg.cities, c)
	return idx
}

func (sg *searchGraph) numberOfVertices() int {
	return len(sg.cities)
}

// relax tries every arc of u and reports each head whose label improved to onImproved.
func (sg *searchGraph) relax(u da.Index, infos []vertexInfo, onImproved func(v da.Index, dist float64)) {
	for _, a := range sg.adj[u] {
		if infos[a.head].visited {
			continue
		}
		newDist := infos[u].dist + sg.links[a.link].GetDistance()
		if math.IsInf(newDist, 0) || math.IsNaN(newDist) {
			continue
		}
		if newDist < infos[a.head].dist {
			infos[a.head].update(newDist, u, a.link)
			if onImproved != nil {
				onImproved(a.head, newDist)
			}
		}
	}
}

// linearScanSearch. Dijkstra with linear minimum selection. Stops once target is settled or no unvisited
// vertex has a finite distance.
func (sg *searchGraph) linearScanSearch(source, target da.Index) []vertexInfo {
	n := sg.numberOfVertices()
	infos := newVertexInfos(n)
	infos[source].dist = 0

	for settled := 0; settled < n; settled++ {
		u := da.INVALID_INDEX
		minDist := math.Inf(1)
		for v := 0; v < n; v++ {
			if !infos[v].visited && infos[v].dist < minDist {
				u = da.Index(v)
				minDist = infos[v].dist
			}
		}
		if u == da.INVALID_INDEX {
			break
		}

		infos[u].visited = true
		if u == target {
			break
		}
		sg.relax(u, infos, nil)
	}
	return infos
}

// priorityQueueSearch. Dijkstra on a 4-ary heap with decrease-key.
func (sg *searchGraph) priorityQueueSearch(source, target da.Index) []vertexInfo {
	n := sg.numberOfVertices()
	infos := newVertexInfos(n)
	heapNodes := make([]*da.PriorityQueueNode[da.Index], n)

	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(n)

	infos[source].dist = 0
	heapNodes[source] = da.NewPriorityQueueNode(0, source)
	pq.Insert(heapNodes[source])

	onImproved := func(v da.Index, dist float64) {
		if heapNodes[v] != nil && heapNodes[v].GetPos() >= 0 {
			_ = pq.DecreaseKey(heapNodes[v], dist)
			return
		}
		heapNodes[v] = da.NewPriorityQueueNode(dist, v)
		pq.Insert(heapNodes[v])
	}

	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		if err != nil {
			break
		}
		u := node.GetItem()
		if infos[u].visited {
			continue
		}
		infos[u].visited = true
		if u == target {
			break
		}
		sg.relax(u, infos, onImproved)
	}
	return infos
}

// path walks the predecessor labels back from target and returns the links in travel order.
// false means target was not reached.
func (sg *searchGraph) path(source, target da.Index, infos []vertexInfo) ([]da.Link, bool) {
	if source == target {
		return []da.Link{}, true
	}
	if !infos[target].hasParent() {
		return nil, false
	}

	reversed := make([]da.Link, 0)
	for cur := target; cur != source; {
		info := infos[cur]
		if !info.hasParent() || len(reversed) > sg.numberOfVertices() {
			return nil, false
		}
		parent := sg.cities[info.parent]
		reversed = append(reversed, sg.links[info.parentLink].Oriented(parent))
		cur = info.parent
	}
	return util.ReverseG(reversed), true
}
