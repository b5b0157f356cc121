package routing

import (
	"testing"

	"github.com/EdenChai/PathFinder/internal/geo"
	"github.com/EdenChai/PathFinder/internal/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(graph.Adjacency{
		"(0.0, 0.0)": {{0, 1}, {1, 0}},
		"(0.0, 1.0)": {{0, 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewSnapshotRejectsEmpty(t *testing.T) {
	if _, err := NewSnapshot(nil, ""); err == nil {
		t.Fatal("want error for nil graph")
	}
	if _, err := NewSnapshot(graph.New(), ""); err == nil {
		t.Fatal("want error for empty graph")
	}
}

// 快照绑定：索引返回的节点必须能在同一快照的图中解析出编号
func TestSnapshotIndexMatchesGraph(t *testing.T) {
	snap, err := NewSnapshot(testGraph(t), "kdtree")
	if err != nil {
		t.Fatal(err)
	}
	queries := []geo.Point{
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0.0, Lon: 2.02},
		{Lat: 50, Lon: 50},
	}
	for _, q := range queries {
		n, _ := snap.Index.Nearest(q)
		if _, ok := snap.Graph.ID(n); !ok {
			t.Fatalf("index returned %v which is not a graph node", n)
		}
	}
}

func TestDynamicPublish(t *testing.T) {
	var d Dynamic
	if d.Load() != nil {
		t.Fatal("unpublished Dynamic should load nil")
	}
	s1, err := NewSnapshot(testGraph(t), "linear")
	if err != nil {
		t.Fatal(err)
	}
	d.Store(s1)
	if d.Load() != s1 {
		t.Fatal("Load did not return published snapshot")
	}
	s2, err := NewSnapshot(testGraph(t), "kdtree")
	if err != nil {
		t.Fatal(err)
	}
	d.Store(s2)
	if d.Load() != s2 {
		t.Fatal("swap did not replace snapshot")
	}
}
