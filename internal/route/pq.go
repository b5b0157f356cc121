package route

import "container/heap"

// element：搜索前沿中的候选节点；index 记录堆内位置供下调优先级时定位
type element struct {
	node     int
	priority float64
	index    int
}

// frontier：实现 heap.Interface 的最小堆，弹出暂定距离最小的候选
type frontier []*element

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool { return f[i].priority < f[j].priority }

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

// 由 heap.Interface 调用，不应被直接使用
func (f *frontier) Push(x any) {
	e := x.(*element)
	e.index = len(*f)
	*f = append(*f, e)
}

// 由 heap.Interface 调用，不应被直接使用
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	e.index = -1
	*f = old[:n-1]
	return e
}

// decrease：下调在堆中候选的暂定距离并恢复堆序
func (f *frontier) decrease(e *element, priority float64) {
	e.priority = priority
	heap.Fix(f, e.index)
}
