package simplify

import (
	"container/heap"
	"math"
)

// maxArea marks vertices that must survive. It is the float32 maximum so
// areas stay representable as a 32 bit ordinate.
const maxArea = math.MaxFloat32

type areaNode struct {
	area       float64
	prev, next int
	index      int // position in the heap
	vertex     int
}

// areaHeap is a min-heap of vertices ordered by effective area, ties broken
// by vertex order so results are deterministic.
type areaHeap []*areaNode

func (h areaHeap) Len() int { return len(h) }

func (h areaHeap) Less(i, j int) bool {
	if h[i].area != h[j].area {
		return h[i].area < h[j].area
	}
	return h[i].vertex < h[j].vertex
}

func (h areaHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *areaHeap) Push(x any) {
	n := x.(*areaNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *areaHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	n.index = -1
	return n
}

func triangleArea(src srcCurve, a, b, c int) float64 {
	ax, ay := src.XAt(a), src.YAt(a)
	bx, by := src.XAt(b), src.YAt(b)
	cx, cy := src.XAt(c), src.YAt(c)
	return math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2
}

// effectiveAreas returns the Visvalingam effective area of every vertex.
// Vertices are eliminated smallest area first; the neighbours of an
// eliminated vertex get the area of their new triangle, never less than the
// eliminated one. Elimination stops once the smallest area exceeds
// threshold or only the end vertices are left. The last minRetained
// eliminations and the end vertices get maxArea.
func effectiveAreas(src srcCurve, n, minRetained int, threshold float64) []float64 {
	res := make([]float64, n)
	nodes := make([]areaNode, n)
	h := make(areaHeap, n)
	for i := range nodes {
		nd := &nodes[i]
		nd.vertex = i
		nd.prev = i - 1
		nd.next = i + 1
		res[i] = maxArea
		switch i {
		case 0:
			nd.prev = 0
			nd.area = maxArea
		case n - 1:
			nd.next = n - 1
			nd.area = maxArea
		default:
			nd.area = triangleArea(src, i-1, i, i+1)
		}
		nd.index = i
		h[i] = nd
	}
	heap.Init(&h)

	for i := 0; h.Len() > 0; i++ {
		cur := heap.Pop(&h).(*areaNode)
		if cur.vertex == 0 || cur.vertex == n-1 {
			break
		}
		if i < n-minRetained {
			res[cur.vertex] = cur.area
		} else {
			res[cur.vertex] = maxArea
		}
		before, after := cur.prev, cur.next
		if before > 0 {
			nd := &nodes[before]
			nd.area = math.Max(triangleArea(src, nd.prev, before, after), res[cur.vertex])
			heap.Fix(&h, nd.index)
		}
		if after < n-1 {
			nd := &nodes[after]
			nd.area = math.Max(triangleArea(src, before, after, nd.next), res[cur.vertex])
			heap.Fix(&h, nd.index)
		}
		nodes[before].next = cur.next
		nodes[after].prev = cur.prev
		if res[cur.vertex] > threshold || nodes[0].next == n-1 {
			break
		}
	}
	return res
}
