// 包 routing：路由图快照的构建与原子发布
package routing

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/EdenChai/PathFinder/internal/graph"
	"github.com/EdenChai/PathFinder/internal/spatial"
)

// Snapshot：图与最近邻索引的绑定快照
// 背景：索引位置必须与图的节点枚举顺序一致，二者由同一工厂调用产出，
// 从构造上杜绝"索引与图错位"的静默数据污染
// 约束：发布后只读；重载时构建全新快照整体替换，绝不原地修改
type Snapshot struct {
	Graph   *graph.Graph
	Index   spatial.Index
	BuiltAt time.Time
}

// NewSnapshot：从已构建的图产出绑定快照，indexKind 见 spatial.New
// 约束：空图直接拒绝，避免吸附查询返回无意义零值坐标
func NewSnapshot(g *graph.Graph, indexKind string) (*Snapshot, error) {
	if g == nil || g.NumNodes() == 0 {
		return nil, errors.New("routing: empty graph")
	}
	return &Snapshot{
		Graph:   g,
		Index:   spatial.New(indexKind, g.Nodes()),
		BuiltAt: time.Now(),
	}, nil
}

// Dynamic：快照的无锁发布点
// 背景：atomic.Value 保证构建先行发生于任何查询读取，替代按请求检查的全局标志位；
// 读路径不阻塞，任意数量并发查询共享同一只读快照
type Dynamic struct {
	v atomic.Value
}

// Load：读取当前快照；尚未发布时返回 nil，由调用方映射为未就绪响应
func (d *Dynamic) Load() *Snapshot {
	x := d.v.Load()
	if x == nil {
		return nil
	}
	return x.(*Snapshot)
}

// Store：发布新快照，对其后的所有查询立即生效
func (d *Dynamic) Store(s *Snapshot) { d.v.Store(s) }
