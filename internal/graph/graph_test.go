package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/EdenChai/PathFinder/internal/geo"
)

func TestBuildNodeCount(t *testing.T) {
	// 节点数 = 键与邻居列表中出现的不同坐标值个数
	adj := Adjacency{
		"(0.0, 0.0)": {{0, 1}, {1, 0}},
		"(0.0, 1.0)": {{0, 2}, {0, 0}},
	}
	g, err := Build(adj)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.NumNodes(); got != 4 {
		t.Fatalf("NumNodes = %d, want 4", got)
	}
	if got := g.NumEdges(); got != 3 {
		t.Fatalf("NumEdges = %d, want 3", got)
	}
}

func TestBuildUndirected(t *testing.T) {
	adj := Adjacency{
		"(0.0, 0.0)": {{0, 1}},
	}
	g, err := Build(adj)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := g.ID(geo.Point{Lat: 0, Lon: 0})
	b, _ := g.ID(geo.Point{Lat: 0, Lon: 1})
	if len(g.Neighbors(a)) != 1 || g.Neighbors(a)[0].To != b {
		t.Fatalf("missing forward edge")
	}
	if len(g.Neighbors(b)) != 1 || g.Neighbors(b)[0].To != a {
		t.Fatalf("missing reverse edge")
	}
	want := geo.Haversine(geo.Point{Lat: 0, Lon: 0}, geo.Point{Lat: 0, Lon: 1})
	if got := g.Neighbors(a)[0].Weight; math.Abs(got-want) > 1e-9 {
		t.Fatalf("edge weight = %v, want %v", got, want)
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := New()
	a := geo.Point{Lat: 0, Lon: 0}
	b := geo.Point{Lat: 0, Lon: 1}
	g.AddEdge(a, b, 10)
	g.AddEdge(a, b, 20)
	g.AddEdge(b, a, 30)
	if got := g.NumEdges(); got != 1 {
		t.Fatalf("NumEdges = %d, want 1 after re-adding", got)
	}
	ia, _ := g.ID(a)
	if got := g.Neighbors(ia)[0].Weight; got != 30 {
		t.Fatalf("weight = %v, want overwrite to 30", got)
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := New()
	p := geo.Point{Lat: 1.5, Lon: -2.5}
	id1 := g.AddNode(p)
	id2 := g.AddNode(p)
	if id1 != id2 || g.NumNodes() != 1 {
		t.Fatalf("AddNode not idempotent: %d %d nodes=%d", id1, id2, g.NumNodes())
	}
}

func TestBuildParseErrors(t *testing.T) {
	cases := []Adjacency{
		{"not a coordinate": {{0, 1}}},
		{"(1.0)": {{0, 1}}},
		{"(1.0, x)": {{0, 1}}},
		{"(0.0, 0.0)": {{0, 1, 2}}},
		{"(0.0, 0.0)": {{0}}},
	}
	for _, adj := range cases {
		_, err := Build(adj)
		if err == nil {
			t.Fatalf("Build(%v) succeeded, want parse error", adj)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Build(%v) error %v is not *ParseError", adj, err)
		}
	}
}

func TestParseKeyForms(t *testing.T) {
	cases := []struct {
		in   string
		want geo.Point
	}{
		{"(32.0853, 34.7818)", geo.Point{Lat: 32.0853, Lon: 34.7818}},
		{"(0.0,1.0)", geo.Point{Lat: 0, Lon: 1}},
		{"  -1.5 , 2.25  ", geo.Point{Lat: -1.5, Lon: 2.25}},
	}
	for _, c := range cases {
		got, err := parseKey(c.in)
		if err != nil {
			t.Fatalf("parseKey(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parseKey(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	adj := Adjacency{
		"(2.0, 2.0)": {{3, 3}},
		"(0.0, 0.0)": {{1, 1}},
	}
	g1, err := Build(adj)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Build(adj)
	if err != nil {
		t.Fatal(err)
	}
	n1 := g1.Nodes()
	n2 := g2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("node counts differ: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("node order differs at %d: %v vs %v", i, n1[i], n2[i])
		}
	}
}
