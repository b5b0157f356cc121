package kml

import (
	"strconv"
	"strings"
	"testing"

	"github.com/EdenChai/PathFinder/internal/geo"
)

func extractLineCoords(t *testing.T, doc string) []geo.Point {
	t.Helper()
	i := strings.Index(doc, "<coordinates>")
	j := strings.Index(doc, "</coordinates>")
	if i < 0 || j < 0 || j < i {
		t.Fatalf("no coordinates element in document:\n%s", doc)
	}
	var pts []geo.Point
	for _, tok := range strings.Fields(doc[i+len("<coordinates>") : j]) {
		parts := strings.Split(tok, ",")
		if len(parts) < 2 {
			t.Fatalf("bad coordinate token %q", tok)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			t.Fatalf("bad lon in %q: %v", tok, err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			t.Fatalf("bad lat in %q: %v", tok, err)
		}
		// 交换回 (lat, lon) 以便与输入路径直接比较
		pts = append(pts, geo.Point{Lat: lat, Lon: lon})
	}
	return pts
}

func TestEncodePathRoundTrip(t *testing.T) {
	path := []geo.Point{
		{Lat: 32.0853, Lon: 34.7818},
		{Lat: 32.087001, Lon: 34.780002},
		{Lat: -1.2345678901234567, Lon: 103.45678901234567},
	}
	doc, err := EncodePath(path, false)
	if err != nil {
		t.Fatal(err)
	}
	got := extractLineCoords(t, doc)
	if len(got) != len(path) {
		t.Fatalf("got %d coordinates, want %d", len(got), len(path))
	}
	for i := range path {
		// 精度要求：坐标原值透传，反解析后必须逐位一致
		if got[i] != path[i] {
			t.Fatalf("coordinate %d = %v, want %v", i, got[i], path[i])
		}
	}
}

func TestEncodePathDocumentShape(t *testing.T) {
	path := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
	}
	doc, err := EncodePath(path, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`xmlns="http://www.opengis.net/kml/2.2"`,
		"<Document>",
		"<LineString>",
		"<Point>",
		"<name>Shortest Path</name>",
		"<name>wp-0</name>",
		"<name>wp-1</name>",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
	// 默认缩进排版
	if !strings.Contains(doc, "\n") {
		t.Fatal("document is not pretty printed")
	}
}

func TestEncodePathWithoutPoints(t *testing.T) {
	path := []geo.Point{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 1},
	}
	doc, err := EncodePath(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<Point>") {
		t.Fatal("unexpected Point placemarks in line-only document")
	}
}
