// 包 kml：将路径节点序列编码为 KML 地理标记文档
package kml

import (
	"bytes"
	"fmt"

	gokml "github.com/twpayne/go-kml/v2"

	"github.com/EdenChai/PathFinder/internal/geo"
)

// EncodePath：有序路径 → KML 文本
// 背景：交换格式约定坐标为 (lon, lat) 顺序，与内部 (lat, lon) 相反；
// 输出一条覆盖全程的 LineString，withPoints 时附带逐节点 Placemark
// 约束：坐标原值透传不舍入；输出带 KML 2.2 命名空间并缩进排版
func EncodePath(path []geo.Point, withPoints bool) (string, error) {
	coords := make([]gokml.Coordinate, len(path))
	for i, p := range path {
		coords[i] = gokml.Coordinate{Lon: p.Lon, Lat: p.Lat}
	}
	children := []gokml.Element{
		gokml.Name("Shortest Path"),
		gokml.Placemark(
			gokml.Name("Shortest Path"),
			gokml.LineString(gokml.Coordinates(coords...)),
		),
	}
	if withPoints {
		for i, c := range coords {
			children = append(children, gokml.Placemark(
				gokml.Name(fmt.Sprintf("wp-%d", i)),
				gokml.Point(gokml.Coordinates(c)),
			))
		}
	}
	doc := gokml.KML(gokml.Document(children...))
	var buf bytes.Buffer
	if err := doc.WriteIndent(&buf, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
