// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EdenChai/PathFinder/internal/geo"
	"github.com/EdenChai/PathFinder/internal/geoip"
	"github.com/EdenChai/PathFinder/internal/kml"
	"github.com/EdenChai/PathFinder/internal/logger"
	"github.com/EdenChai/PathFinder/internal/metrics"
	"github.com/EdenChai/PathFinder/internal/route"
	"github.com/EdenChai/PathFinder/internal/routing"
	"github.com/EdenChai/PathFinder/internal/store"
)

// 解析访问者 IP：优先常见反向代理头，兜底 RemoteAddr；多层代理场景下稳定取到源 IP
func getClientIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("x-forwarded-for"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	if x := h.Get("cf-connecting-ip"); x != "" {
		return x
	}
	if x := h.Get("x-real-ip"); x != "" {
		return x
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}

// parsePoint：请求坐标 → 校验后的内部坐标
// 约束：缺字段与越界（纬度 [-90,90]、经度 [-180,180]）均为校验失败，核心不被调用
func parsePoint(pp *pointParam, field string) (geo.Point, *queryError) {
	if pp == nil || pp.Lat == nil || pp.Lon == nil {
		return geo.Point{}, errValidation("missing " + field + " coordinates")
	}
	p := geo.Point{Lat: *pp.Lat, Lon: *pp.Lon}
	if !p.Valid() {
		return geo.Point{}, errValidation(field + " out of range: lat in [-90,90], lon in [-180,180]")
	}
	return p, nil
}

// snapNode：吸附查询点到最近路点，可选经 Redis 缓存
// 背景：吸附对同一快照是纯函数，键包含快照构建时间，重载后自然失配旧值；
// 键坐标按 1e-5 度（约 1 米）取整，容忍请求端的浮点噪声
// 约束：仅缓存吸附结果，计算出的路径从不缓存或落盘
func snapNode(ctx context.Context, rc *redis.Client, snap *routing.Snapshot, p geo.Point) geo.Point {
	if rc == nil {
		n, _ := snap.Index.Nearest(p)
		return n
	}
	key := fmt.Sprintf("snap:%d:%.5f:%.5f", snap.BuiltAt.UnixNano(), p.Lat, p.Lon)
	if s, _ := rc.Get(ctx, key).Result(); s != "" {
		var n geo.Point
		if json.Unmarshal([]byte(s), &n) == nil {
			metrics.SnapCacheHitsTotal.Inc()
			return n
		}
	}
	metrics.SnapCacheMissesTotal.Inc()
	n, _ := snap.Index.Nearest(p)
	if b, err := json.Marshal(n); err == nil {
		rc.Set(ctx, key, string(b), time.Hour)
	}
	return n
}

// BuildRoutes：构建并返回 API 路由；独立 ServeMux 便于在主入口挂载到 /api 前缀
// 背景：st/rc/loc 均可为 nil，分别表示统计、吸附缓存、IP 定位关闭
func BuildRoutes(dyn *routing.Dynamic, st *store.Store, rc *redis.Client, loc *geoip.Locator) *http.ServeMux {
	apiMux := http.NewServeMux()

	apiMux.HandleFunc("/route", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ctx := r.Context()
		tBegin := time.Now()
		metrics.RouteRequestsTotal.Inc()

		var req routeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errValidation("invalid request body: "+err.Error()))
			return
		}

		snap := dyn.Load()
		if snap == nil {
			writeError(w, errNotReady)
			return
		}

		var start geo.Point
		if req.Start == nil && loc != nil {
			ip := getClientIP(r)
			p, ok := loc.Locate(ip)
			if !ok {
				writeError(w, errValidation("missing start coordinates and client IP could not be located"))
				return
			}
			metrics.GeoIPFallbackTotal.Inc()
			logger.L().Debug("geoip_start", "ip", ip, "lat", p.Lat, "lon", p.Lon)
			start = p
		} else {
			p, qe := parsePoint(req.Start, "start")
			if qe != nil {
				writeError(w, qe)
				return
			}
			start = p
		}
		end, qe := parsePoint(req.End, "end")
		if qe != nil {
			writeError(w, qe)
			return
		}
		if start == end {
			writeError(w, errIdenticalEndpoints)
			return
		}

		src := snapNode(ctx, rc, snap, start)
		dst := snapNode(ctx, rc, snap, end)
		if src == dst {
			writeError(w, errSnapCollision)
			return
		}

		path, distM, err := route.ShortestPath(snap.Graph, src, dst)
		if errors.Is(err, route.ErrNoPath) {
			metrics.NoPathTotal.Inc()
			logger.L().Debug("route_no_path",
				"src_lat", src.Lat, "src_lon", src.Lon,
				"dst_lat", dst.Lat, "dst_lon", dst.Lon,
			)
			writeError(w, errNoPath)
			return
		}
		if err != nil {
			logger.L().Error("route_error", "err", err)
			writeError(w, &queryError{status: http.StatusInternalServerError, code: "internal", msg: "route computation failed"})
			return
		}

		doc, err := kml.EncodePath(path, true)
		if err != nil {
			logger.L().Error("kml_encode_error", "err", err)
			writeError(w, &queryError{status: http.StatusInternalServerError, code: "internal", msg: "path encoding failed"})
			return
		}

		res := routeResult{
			ShortestPath: make([][2]float64, len(path)),
			DistanceM:    distM,
			KMLContent:   doc,
		}
		for i, p := range path {
			res.ShortestPath[i] = [2]float64{p.Lat, p.Lon}
		}
		if st != nil {
			_ = st.IncrStats(ctx)
		}
		w.Header().Set("content-type", "application/json; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_ = json.NewEncoder(w).Encode(res)
		metrics.RouteDurationMs.Observe(float64(time.Since(tBegin).Milliseconds()))
		logger.L().Debug("route_ok", "hops", len(path), "distance_m", distM)
	})

	apiMux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		m := map[string]any{"total": int64(0), "today": int64(0)}
		if st != nil {
			if t, err := st.GetTotals(r.Context()); err == nil {
				m["total"] = t.Total
				m["today"] = t.Today
			}
		}
		w.Header().Set("content-type", "application/json; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_ = json.NewEncoder(w).Encode(m)
	})

	apiMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json; charset=utf-8")
		snap := dyn.Load()
		if snap == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "loading"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"nodes":    snap.Graph.NumNodes(),
			"edges":    snap.Graph.NumEdges(),
			"built_at": snap.BuiltAt,
		})
	})

	return apiMux
}
