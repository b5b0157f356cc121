// 数据导入工具：将邻接 JSON 文件整体写入 PostgreSQL，供服务端以 GRAPH_SOURCE=db 构建图
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/EdenChai/PathFinder/internal/graph"
	"github.com/EdenChai/PathFinder/internal/migrate"
	"github.com/EdenChai/PathFinder/internal/store"
	"github.com/EdenChai/PathFinder/internal/utils"
)

// 读取文件、先整体构图验证、再单事务替换数据库副本
// 约束：任何解析失败立即终止，不落半成品数据
func main() {
	_ = godotenv.Load(".env")
	path := os.Getenv("GRAPH_PATH")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = filepath.Join("data", "graph", "graph_example.json")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var adj graph.Adjacency
	if err := json.Unmarshal(b, &adj); err != nil {
		log.Fatal(err)
	}
	// 导入前构图验证，坏坐标在写库前暴露
	g, err := graph.Build(adj)
	if err != nil {
		log.Fatal(err)
	}

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := migrate.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}
	st := store.AttachDB(db)
	if err := st.ReplaceAdjacency(context.Background(), adj); err != nil {
		log.Fatal(err)
	}
	log.Printf("imported %s: %d nodes, %d edges", path, g.NumNodes(), g.NumEdges())
}
