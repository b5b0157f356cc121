package spatial

import (
	"math"

	"github.com/EdenChai/PathFinder/internal/geo"
)

// Linear：全量扫描实现
// 背景：节点规模小、查询量低时扫描足够快且无构建成本；也作为 KD-Tree 的对照实现
type Linear struct {
	nodes []geo.Point
}

func NewLinear(nodes []geo.Point) *Linear {
	cp := make([]geo.Point, len(nodes))
	copy(cp, nodes)
	return &Linear{nodes: cp}
}

// Nearest：逐个比较取距离最小节点
// 约束：严格小于才更新，等距时保留输入顺序中先出现的节点
func (l *Linear) Nearest(p geo.Point) (geo.Point, float64) {
	best := geo.Point{}
	bestD := math.Inf(1)
	for _, n := range l.nodes {
		if d := geo.Haversine(p, n); d < bestD {
			best, bestD = n, d
		}
	}
	return best, bestD
}
