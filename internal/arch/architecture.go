package arch

import (
	"slices"
	"sync"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Edge is an undirected coupling between two nodes, stored with the smaller id first.
type Edge [2]int

// Architecture is an immutable device connectivity graph. Hop distances are
// computed per target node on first use and cached; it is safe for concurrent use.
type Architecture struct {
	name  string
	g     *simple.UndirectedGraph
	nodes []int
	edges []Edge

	mu   sync.Mutex
	hops map[int]map[int64]int
}

// New builds an architecture from explicit nodes and edges. Nodes mentioned
// only by edges are added implicitly; self loops are ignored.
func New(name string, nodes []int, edges []Edge) *Architecture {
	g := simple.NewUndirectedGraph()
	addNode := func(id int) {
		if g.Node(int64(id)) == nil {
			g.AddNode(simple.Node(id))
		}
	}
	for _, n := range nodes {
		addNode(n)
	}
	for _, e := range edges {
		if e[0] == e[1] {
			continue
		}
		addNode(e[0])
		addNode(e[1])
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}

	a := &Architecture{name: name, g: g}
	for _, n := range graph.NodesOf(g.Nodes()) {
		a.nodes = append(a.nodes, int(n.ID()))
	}
	slices.Sort(a.nodes)

	for _, e := range graph.EdgesOf(g.Edges()) {
		u, v := int(e.From().ID()), int(e.To().ID())
		a.edges = append(a.edges, Edge{min(u, v), max(u, v)})
	}
	slices.SortFunc(a.edges, func(x, y Edge) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})

	return a
}

// FromEdges builds an architecture whose nodes are exactly the edge endpoints.
func FromEdges(name string, edges []Edge) *Architecture {
	return New(name, nil, edges)
}

// Name returns the catalog name the architecture was built under.
func (a *Architecture) Name() string { return a.name }

// Nodes returns the node ids in ascending order.
func (a *Architecture) Nodes() []int { return slices.Clone(a.nodes) }

// NodeCount returns the number of nodes.
func (a *Architecture) NodeCount() int { return len(a.nodes) }

// Edges returns the couplings sorted by endpoint.
func (a *Architecture) Edges() []Edge { return slices.Clone(a.edges) }

// Adjacent reports whether nodes x and y are coupled.
func (a *Architecture) Adjacent(x, y int) bool {
	return a.g.HasEdgeBetween(int64(x), int64(y))
}

// Degree returns the number of couplings of node x.
func (a *Architecture) Degree(x int) int {
	if a.g.Node(int64(x)) == nil {
		return 0
	}
	return a.g.From(int64(x)).Len()
}

// Distance returns the number of couplings on a shortest path from x to y, or
// -1 when y is unreachable.
func (a *Architecture) Distance(x, y int) int {
	if a.g.Node(int64(x)) == nil || a.g.Node(int64(y)) == nil {
		return -1
	}
	d, ok := a.hopsTo(y)[int64(x)]
	if !ok {
		return -1
	}
	return d
}

// ShortestPath returns the nodes of a shortest path from x to y inclusive, or
// nil when y is unreachable. Among equal length paths the lexicographically
// smallest node sequence wins.
func (a *Architecture) ShortestPath(x, y int) []int {
	d := a.Distance(x, y)
	if d < 0 {
		return nil
	}
	hops := a.hopsTo(y)

	path := make([]int, 0, d+1)
	path = append(path, x)
	for cur := int64(x); d > 0; d-- {
		next := int64(-1)
		for _, n := range graph.NodesOf(a.g.From(cur)) {
			id := n.ID()
			if h, ok := hops[id]; ok && h == d-1 && (next < 0 || id < next) {
				next = id
			}
		}
		path = append(path, int(next))
		cur = next
	}
	return path
}

// hopsTo returns the breadth-first distance from every node that can reach y.
func (a *Architecture) hopsTo(y int) map[int64]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h, ok := a.hops[y]; ok {
		return h
	}

	h := make(map[int64]int)
	var bf traverse.BreadthFirst
	bf.Walk(a.g, simple.Node(y), func(n graph.Node, depth int) bool {
		h[n.ID()] = depth
		return false
	})
	if a.hops == nil {
		a.hops = make(map[int]map[int64]int)
	}
	a.hops[y] = h
	return h
}

// Connected reports whether every node can reach every other node.
func (a *Architecture) Connected() bool {
	return len(topo.ConnectedComponents(a.g)) <= 1
}
