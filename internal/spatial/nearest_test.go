package spatial

import (
	"math"
	"math/rand"
	"testing"

	"github.com/EdenChai/PathFinder/internal/geo"
)

func randPoints(r *rand.Rand, n int) []geo.Point {
	pts := make([]geo.Point, n)
	for i := range pts {
		pts[i] = geo.Point{
			Lat: r.Float64()*160 - 80,
			Lon: r.Float64()*360 - 180,
		}
	}
	return pts
}

// 交叉验证：任意查询点上，KD-Tree 与线性扫描返回的最小距离必须一致
// （并列最近时允许节点不同，但距离必须相等）
func TestLinearKDTreeAgree(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	nodes := randPoints(r, 300)
	lin := NewLinear(nodes)
	kd := NewKDTree(nodes)
	for i := 0; i < 500; i++ {
		q := geo.Point{
			Lat: r.Float64()*180 - 90,
			Lon: r.Float64()*360 - 180,
		}
		_, dl := lin.Nearest(q)
		_, dk := kd.Nearest(q)
		if math.Abs(dl-dk) > 1e-6 {
			t.Fatalf("query %v: linear %v vs kdtree %v", q, dl, dk)
		}
	}
}

func TestNearestExact(t *testing.T) {
	nodes := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
		{Lat: 1, Lon: 0},
	}
	for _, idx := range []Index{NewLinear(nodes), NewKDTree(nodes)} {
		n, _ := idx.Nearest(geo.Point{Lat: 0.01, Lon: 0.01})
		if n != nodes[0] {
			t.Fatalf("snap (0.01,0.01) = %v, want %v", n, nodes[0])
		}
		n, _ = idx.Nearest(geo.Point{Lat: 0.0, Lon: 2.02})
		if n != nodes[2] {
			t.Fatalf("snap (0,2.02) = %v, want %v", n, nodes[2])
		}
	}
}

// 确定性：相同输入顺序构建的索引，对同一查询集返回完全一致的结果
func TestNearestDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	nodes := randPoints(r, 128)
	queries := randPoints(r, 64)
	a := NewKDTree(nodes)
	b := NewKDTree(nodes)
	for _, q := range queries {
		na, da := a.Nearest(q)
		nb, db := b.Nearest(q)
		if na != nb || da != db {
			t.Fatalf("non-deterministic: %v/%v vs %v/%v", na, da, nb, db)
		}
	}
}

// 等距并列：线性扫描保留输入顺序中先出现的节点
func TestLinearTieFirstWins(t *testing.T) {
	nodes := []geo.Point{
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: -1},
	}
	lin := NewLinear(nodes)
	n, _ := lin.Nearest(geo.Point{Lat: 0, Lon: 0})
	if n != nodes[0] {
		t.Fatalf("tie break = %v, want first node %v", n, nodes[0])
	}
}

func TestNewSelection(t *testing.T) {
	nodes := []geo.Point{{Lat: 0, Lon: 0}}
	if _, ok := New("linear", nodes).(*Linear); !ok {
		t.Fatal("New(linear) did not return *Linear")
	}
	if _, ok := New("", nodes).(*KDTree); !ok {
		t.Fatal("New(default) did not return *KDTree")
	}
	if _, ok := New("kdtree", nodes).(*KDTree); !ok {
		t.Fatal("New(kdtree) did not return *KDTree")
	}
}

// 构建输入不被修改：Index 内部持有副本
func TestBuildCopiesInput(t *testing.T) {
	nodes := []geo.Point{
		{Lat: 3, Lon: 3},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
	}
	orig := make([]geo.Point, len(nodes))
	copy(orig, nodes)
	_ = NewKDTree(nodes)
	for i := range nodes {
		if nodes[i] != orig[i] {
			t.Fatalf("input mutated at %d: %v", i, nodes[i])
		}
	}
}
