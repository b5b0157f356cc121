package api

// 文档注释：对外请求/返回结构
// 背景：统一对外序列化模型，仅包含必要字段；坐标指针区分"缺失"与"零值"
// 约束：字段稳定；新增字段需评估兼容性与前端依赖。

// pointParam：请求中的坐标，lat/lon 任一缺失视为字段缺失
type pointParam struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// routeRequest：路由查询请求；start 缺省时可按客户端 IP 定位兜底（需启用 GeoIP）
type routeRequest struct {
	Start *pointParam `json:"start"`
	End   *pointParam `json:"end"`
}

// routeResult：成功返回，路径为 [lat, lon] 序列，另附 KML 文本
type routeResult struct {
	ShortestPath [][2]float64 `json:"shortest_path"`
	DistanceM    float64      `json:"distance_m"`
	KMLContent   string       `json:"kml_content"`
}

// apiError：失败返回，code 供程序分支，error 供人读
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
