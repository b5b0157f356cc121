// 包 graph：从邻接描述构建不可变的无向加权路点图
package graph

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/EdenChai/PathFinder/internal/geo"
)

// ParseError：邻接输入中的坐标文本无法解析
// 背景：构建期错误不可恢复，整体失败而非产出部分图；携带原始文本便于定位坏数据
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return "graph: bad coordinate " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Edge：某节点的一条邻接半边
type Edge struct {
	To     int
	Weight float64
}

// Graph：节点与无向加权边的只读集合
// 背景：节点按首次插入顺序编号，空间索引快照依赖该枚举顺序保持一致
// 约束：构建完成后不再修改；并发读取无需加锁
type Graph struct {
	nodes []geo.Point
	ids   map[geo.Point]int
	adj   [][]Edge
}

func New() *Graph {
	return &Graph{ids: make(map[geo.Point]int)}
}

// AddNode：幂等插入节点并返回编号；已存在时原样返回
func (g *Graph) AddNode(p geo.Point) int {
	if id, ok := g.ids[p]; ok {
		return id
	}
	id := len(g.nodes)
	g.nodes = append(g.nodes, p)
	g.ids[p] = id
	g.adj = append(g.adj, nil)
	return id
}

// AddEdge：插入无向边，两端点不存在时顺带插入
// 约束：同一对节点重复插入时覆盖权重而非追加；权重需非负
func (g *Graph) AddEdge(a, b geo.Point, w float64) {
	ia := g.AddNode(a)
	ib := g.AddNode(b)
	g.setHalf(ia, ib, w)
	g.setHalf(ib, ia, w)
}

func (g *Graph) setHalf(from, to int, w float64) {
	for i := range g.adj[from] {
		if g.adj[from][i].To == to {
			g.adj[from][i].Weight = w
			return
		}
	}
	g.adj[from] = append(g.adj[from], Edge{To: to, Weight: w})
}

// Nodes：按插入顺序返回节点序列
// WARNING: 返回内部切片以避免每次查询复制，调用方不得修改
func (g *Graph) Nodes() []geo.Point { return g.nodes }

func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges：无向边数（半边数的一半）
func (g *Graph) NumEdges() int {
	n := 0
	for _, es := range g.adj {
		n += len(es)
	}
	return n / 2
}

// ID：节点编号；第二返回值为 false 表示坐标不在图中
func (g *Graph) ID(p geo.Point) (int, bool) {
	id, ok := g.ids[p]
	return id, ok
}

// Node：按编号取节点坐标
func (g *Graph) Node(id int) geo.Point { return g.nodes[id] }

// Neighbors：某节点的邻接半边列表（只读）
func (g *Graph) Neighbors(id int) []Edge { return g.adj[id] }

// Adjacency：原始邻接描述
// 背景：与数据文件格式保持一致，键为 "(lat, lon)" 文本，值为 [lat, lon] 邻居列表；
// 对称声明非必需，插入即双向可达
type Adjacency map[string][][]float64

// Build：按邻接描述构建图，边权为两端点的大圆距离
// 约束：键按字典序遍历，保证相同输入得到相同的节点枚举顺序；
// 任一坐标解析失败立即整体失败，不修改任何全局状态
func Build(adj Adjacency) (*Graph, error) {
	keys := make([]string, 0, len(adj))
	for k := range adj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	g := New()
	for _, key := range keys {
		p, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		g.AddNode(p)
		for _, nb := range adj[key] {
			if len(nb) != 2 {
				return nil, &ParseError{Input: fmt.Sprint(nb), Err: errors.New("want [lat, lon] pair")}
			}
			q := geo.Point{Lat: nb[0], Lon: nb[1]}
			g.AddEdge(p, q, geo.Haversine(p, q))
		}
	}
	return g, nil
}

// parseKey：解析 "(lat, lon)" 形式的坐标键
// 背景：键为松散文本，需要结构化解析而非隐式数值转换；允许省略括号与空格
func parseKey(s string) (geo.Point, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "(")
	t = strings.TrimSuffix(t, ")")
	parts := strings.Split(t, ",")
	if len(parts) != 2 {
		return geo.Point{}, &ParseError{Input: s, Err: errors.New("want two comma separated floats")}
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point{}, &ParseError{Input: s, Err: err}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point{}, &ParseError{Input: s, Err: err}
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}
