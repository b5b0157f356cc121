// 程序入口：仅负责读取配置、初始化依赖、构建首个路由图快照并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/EdenChai/PathFinder/internal/api"
	"github.com/EdenChai/PathFinder/internal/geoip"
	"github.com/EdenChai/PathFinder/internal/graph"
	"github.com/EdenChai/PathFinder/internal/logger"
	"github.com/EdenChai/PathFinder/internal/metrics"
	"github.com/EdenChai/PathFinder/internal/middleware"
	"github.com/EdenChai/PathFinder/internal/migrate"
	"github.com/EdenChai/PathFinder/internal/routing"
	"github.com/EdenChai/PathFinder/internal/store"
	"github.com/EdenChai/PathFinder/internal/utils"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	l.Debug("log_init_ok")

	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)

	graphPath := os.Getenv("GRAPH_PATH")
	if graphPath == "" {
		graphPath = filepath.Join("data", "graph", "graph_example.json")
	}
	graphSource := os.Getenv("GRAPH_SOURCE")
	indexKind := os.Getenv("NN_INDEX")
	l.Debug("config_graph", "path", graphPath, "source", graphSource, "index", indexKind)

	// 背景：数据库仅承载邻接数据副本与查询统计，按需启用；关闭时图走文件、统计返回零值
	var st *store.Store
	if os.Getenv("PG_ENABLED") == "true" {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
	} else {
		l.Info("db_disabled")
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else if err := rc.Ping(context.Background()).Err(); err != nil {
		l.Error("redis_ping_error", "err", err)
	} else {
		l.Info("redis_ping_ok")
	}

	loc := geoip.OpenFromEnv()
	if loc == nil {
		l.Info("geoip_disabled")
	}
	defer loc.Close()

	// 文档注释：路由图快照构建（图 + 最近邻索引由同一工厂产出）
	// 背景：构建失败立即终止进程，绝不带着空图或半成品图对外服务；
	// 快照经 atomic 发布先行发生于任何查询，重载走整体替换
	buildSnapshot := func(ctx context.Context) (*routing.Snapshot, error) {
		var g *graph.Graph
		var err error
		if graphSource == "db" && st != nil {
			var adj graph.Adjacency
			adj, err = st.LoadAdjacency(ctx)
			if err == nil {
				g, err = graph.Build(adj)
			}
		} else {
			g, err = graph.LoadFile(graphPath)
		}
		if err != nil {
			return nil, err
		}
		return routing.NewSnapshot(g, indexKind)
	}

	var dyn routing.Dynamic
	snap, err := buildSnapshot(context.Background())
	if err != nil {
		l.Error("graph_build_error", "err", err)
		os.Exit(1)
	}
	dyn.Store(snap)
	l.Info("graph_ready", "nodes", snap.Graph.NumNodes(), "edges", snap.Graph.NumEdges())

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(&dyn, st, rc, loc)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())
	mux.HandleFunc(apiBase+"/reload-graph", func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("x-admin-token")
		if t == "" || t != os.Getenv("ADMIN_TOKEN") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		snap2, err := buildSnapshot(r.Context())
		if err != nil {
			l.Error("graph_reload_error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		dyn.Store(snap2)
		metrics.GraphReloadTotal.Inc()
		l.Info("graph_reloaded", "nodes", snap2.Graph.NumNodes(), "edges", snap2.Graph.NumEdges())
		w.WriteHeader(http.StatusNoContent)
	})

	// NOTE: 前端可选；未配置 UI_DIST 时仅提供 API
	if ui := os.Getenv("UI_DIST"); ui != "" {
		mux.Handle("/", http.FileServer(http.Dir(ui)))
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler}
	l.Info("listening", "addr", addr)
	if err := s.ListenAndServe(); err != nil {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
}
