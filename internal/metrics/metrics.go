package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RouteRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_route_requests_total",
		Help: "Total number of /api/route requests",
	})
	RouteDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfinder_route_duration_ms",
		Help:    "Route request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	RejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_rejected_total",
		Help: "Total rejected route queries by error code",
	}, []string{"code"})
	NoPathTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_no_path_total",
		Help: "Total queries spanning disconnected components",
	})
	SnapCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_snap_cache_hits_total",
		Help: "Total redis snap cache hits",
	})
	SnapCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_snap_cache_misses_total",
		Help: "Total redis snap cache misses",
	})
	GeoIPFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_geoip_fallback_total",
		Help: "Total queries with start point derived from client IP",
	})
	GraphReloadTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pathfinder_graph_reload_total",
		Help: "Total successful graph snapshot reloads",
	})
)

func init() {
	prometheus.MustRegister(RouteRequestsTotal)
	prometheus.MustRegister(RouteDurationMs)
	prometheus.MustRegister(RejectedTotal)
	prometheus.MustRegister(NoPathTotal)
	prometheus.MustRegister(SnapCacheHitsTotal)
	prometheus.MustRegister(SnapCacheMissesTotal)
	prometheus.MustRegister(GeoIPFallbackTotal)
	prometheus.MustRegister(GraphReloadTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
