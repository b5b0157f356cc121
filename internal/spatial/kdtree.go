package spatial

import (
	"math"

	"github.com/EdenChai/PathFinder/internal/geo"
)

const (
	axisLat = 0
	axisLon = 1
)

// 文档注释：KD-Tree 最近邻（二维经纬）
// 背景：中位数分割 + 原地 nth 选取构建，避免外部排序带来的额外依赖；
// 查询按分割面到查询点的球面距离下界剪枝，保证与线性扫描等价的最小距离
// 约束：仅支持最近一个点查询；构建输入在内部复制，不影响调用方切片
type KDTree struct {
	root *kdNode
}

type kdNode struct {
	p  geo.Point
	ax int // 0:lat,1:lon
	l  *kdNode
	r  *kdNode
}

func NewKDTree(nodes []geo.Point) *KDTree {
	cp := make([]geo.Point, len(nodes))
	copy(cp, nodes)
	return &KDTree{root: buildKD(cp, 0)}
}

func buildKD(ps []geo.Point, depth int) *kdNode {
	if len(ps) == 0 {
		return nil
	}
	ax := depth % 2
	mid := len(ps) / 2
	selectNth(ps, mid, ax)
	node := &kdNode{p: ps[mid], ax: ax}
	node.l = buildKD(ps[:mid], depth+1)
	node.r = buildKD(ps[mid+1:], depth+1)
	return node
}

// 原地 nth 元素选择（轴为纬度/经度）
func selectNth(a []geo.Point, n int, ax int) {
	lo, hi := 0, len(a)-1
	for lo < hi {
		p := partition(a, lo, hi, (lo+hi)/2, ax)
		if p == n {
			return
		}
		if n < p {
			hi = p - 1
		} else {
			lo = p + 1
		}
	}
}

func partition(a []geo.Point, lo, hi, pivot, ax int) int {
	pv := a[pivot]
	a[pivot], a[hi] = a[hi], a[pivot]
	i := lo
	for j := lo; j < hi; j++ {
		if lessPoint(a[j], pv, ax) {
			a[i], a[j] = a[j], a[i]
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]
	return i
}

func lessPoint(x, y geo.Point, ax int) bool {
	if ax == axisLat {
		return x.Lat < y.Lat
	}
	return x.Lon < y.Lon
}

// Nearest：最近邻查询，返回节点与大圆距离（米）
// 约束：严格小于才更新最优，遍历顺序固定，结果对相同构建输入确定
func (t *KDTree) Nearest(p geo.Point) (geo.Point, float64) {
	best := geo.Point{}
	bestD := math.Inf(1)
	var dfs func(n *kdNode)
	dfs = func(n *kdNode) {
		if n == nil {
			return
		}
		if d := geo.Haversine(p, n.p); d < bestD {
			bestD, best = d, n.p
		}
		var key, split float64
		if n.ax == axisLat {
			key, split = p.Lat, n.p.Lat
		} else {
			key, split = p.Lon, n.p.Lon
		}
		first, second := n.l, n.r
		if key > split {
			first, second = n.r, n.l
		}
		dfs(first)
		// 仅当分割面的球面距离下界小于当前最优时才遍历另一侧
		if planeDist(p, n.p, n.ax) < bestD {
			dfs(second)
		}
	}
	dfs(t.root)
	return best, bestD
}

// planeDist：查询点到分割面（等纬线/子午线）的大圆距离下界
// 背景：用度数差直接换算会在经度轴高纬处高估下界，导致误剪枝；
// 此处纬度轴取弧长，经度轴取到子午线的最短跨线距离，经度差按环绕取最小
func planeDist(p geo.Point, split geo.Point, ax int) float64 {
	const rad = math.Pi / 180
	if ax == axisLat {
		return math.Abs(p.Lat-split.Lat) * rad * geo.EarthRadiusM
	}
	dLon := math.Abs(p.Lon - split.Lon)
	if dLon > 180 {
		dLon = 360 - dLon
	}
	if dLon > 90 {
		dLon = 90
	}
	return geo.EarthRadiusM * math.Asin(math.Cos(p.Lat*rad)*math.Sin(dLon*rad))
}
