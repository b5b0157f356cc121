// 包 geoip：基于 MaxMind City 库的客户端 IP 定位，为缺省起点提供"从我所在位置出发"能力
package geoip

import (
	"net"
	"os"

	"github.com/oschwald/geoip2-golang"

	"github.com/EdenChai/PathFinder/internal/geo"
	"github.com/EdenChai/PathFinder/internal/logger"
)

// Locator：City 数据库读取器的轻量封装
// 约束：nil 接收者表示功能关闭，所有方法对 nil 安全
type Locator struct {
	r *geoip2.Reader
}

// OpenFromEnv：按 GEOIP_DB 打开数据库；未配置或打开失败返回 nil（功能关闭）
// 背景：定位只是便捷兜底，数据库缺失不应阻止服务启动
func OpenFromEnv() *Locator {
	path := os.Getenv("GEOIP_DB")
	if path == "" {
		return nil
	}
	r, err := geoip2.Open(path)
	if err != nil {
		logger.L().Error("geoip_open_error", "path", path, "err", err)
		return nil
	}
	logger.L().Info("geoip_ready", "path", path)
	return &Locator{r: r}
}

func (l *Locator) Close() error {
	if l == nil {
		return nil
	}
	return l.r.Close()
}

// Locate：IP 文本 → 坐标
// 约束：非法 IP、库中无记录或零值坐标均按未命中处理，不产生错误
func (l *Locator) Locate(ip string) (geo.Point, bool) {
	if l == nil {
		return geo.Point{}, false
	}
	addr := net.ParseIP(ip)
	if addr == nil {
		return geo.Point{}, false
	}
	rec, err := l.r.City(addr)
	if err != nil || rec == nil {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: rec.Location.Latitude, Lon: rec.Location.Longitude}
	if p.Lat == 0 && p.Lon == 0 {
		return geo.Point{}, false
	}
	return p, true
}
