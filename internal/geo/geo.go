// 包 geo：基础地理类型与球面距离计算，供图构建、最近邻检索与编码层复用
package geo

import "math"

// EarthRadiusM：地球平均半径（米），边权与索引统一使用
const EarthRadiusM = 6371000.0

// Point：WGS84 坐标点，值语义
// 背景：图节点以坐标值作为唯一标识，相同坐标即同一节点；创建后不可变
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid：纬度 [-90,90]、经度 [-180,180] 的范围校验
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Haversine：两点间大圆距离（米）
// 背景：O(1) 且对称；重合点 a≈0 与对跖点 a≈1 均数值稳定
// 约束：a 在开方前夹取到 [0,1]，任何合法经纬度输入不产生定义域错误
func Haversine(p1, p2 Point) float64 {
	const rad = math.Pi / 180
	phi1 := p1.Lat * rad
	phi2 := p2.Lat * rad
	sinPhi := math.Sin((p2.Lat - p1.Lat) * rad / 2)
	sinLmb := math.Sin((p2.Lon - p1.Lon) * rad / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLmb*sinLmb
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}
