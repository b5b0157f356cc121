// 包 route：加权路点图上的最短路径搜索
package route

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/EdenChai/PathFinder/internal/geo"
	"github.com/EdenChai/PathFinder/internal/graph"
)

// Path：自起点到终点的有序节点序列（简单路径，相邻节点间必有边）
type Path []geo.Point

// ErrNoPath：起终点位于不同连通分量，未找到任何路径
// 背景：属于单次查询的正常结果而非故障，图与索引对后续查询仍然有效
var ErrNoPath = errors.New("route: no path between endpoints")

// ShortestPath：Dijkstra 最短路径，返回路径与总权重（米）
// 背景：边权为非负的大圆距离，终点出堆即最优，可提前终止；
// 暂定距离与前驱均为查询局部状态，不触碰共享图，天然并发安全
// 约束：src/dst 必须已是图中节点（调用方先经空间索引吸附）；
// src==dst 时返回单节点路径而非错误。复杂度 O((V+E) log V)
func ShortestPath(g *graph.Graph, src, dst geo.Point) (Path, float64, error) {
	s, ok := g.ID(src)
	if !ok {
		return nil, 0, fmt.Errorf("route: source %v not in graph", src)
	}
	t, ok := g.ID(dst)
	if !ok {
		return nil, 0, fmt.Errorf("route: target %v not in graph", dst)
	}

	dist := make(map[int]float64)
	prev := make(map[int]int)
	done := make(map[int]bool)
	open := make(map[int]*element)

	f := make(frontier, 0, 16)
	start := &element{node: s, priority: 0}
	heap.Push(&f, start)
	dist[s] = 0
	open[s] = start

	found := false
	for f.Len() > 0 {
		cur := heap.Pop(&f).(*element)
		delete(open, cur.node)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true
		if cur.node == t {
			found = true
			break
		}
		d := dist[cur.node]
		for _, e := range g.Neighbors(cur.node) {
			if done[e.To] {
				continue
			}
			nd := d + e.Weight
			if old, ok := dist[e.To]; ok && nd >= old {
				continue
			}
			dist[e.To] = nd
			prev[e.To] = cur.node
			if el, ok := open[e.To]; ok {
				f.decrease(el, nd)
			} else {
				el := &element{node: e.To, priority: nd}
				heap.Push(&f, el)
				open[e.To] = el
			}
		}
	}
	if !found {
		return nil, 0, ErrNoPath
	}

	// 沿前驱指针回溯，再反转为起点在前的自然顺序
	ids := []int{t}
	for n := t; n != s; {
		n = prev[n]
		ids = append(ids, n)
	}
	path := make(Path, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		path = append(path, g.Node(ids[i]))
	}
	return path, dist[t], nil
}
