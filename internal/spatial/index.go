// 包 spatial：图节点集上的最近邻检索，提供线性扫描与 KD-Tree 两种可互换实现
package spatial

import "github.com/EdenChai/PathFinder/internal/geo"

// Index：最近邻检索接口，返回快照中距查询点大圆距离最小的节点与该距离（米）
// 背景：两种实现行为契约一致，选择只是性能权衡（O(n) 查询零构建 vs O(log n) 查询）
// 约束：并列最近时取枚举/遍历顺序中先出现者；相同输入顺序下结果确定。
// 节点集为构建时快照，图重建后必须连同索引一起重建
type Index interface {
	Nearest(p geo.Point) (geo.Point, float64)
}

// New：按名称选择实现；空或未知名称默认 KD-Tree
func New(kind string, nodes []geo.Point) Index {
	if kind == "linear" {
		return NewLinear(nodes)
	}
	return NewKDTree(nodes)
}
