// 包 store：PostgreSQL 数据访问层，保存路点邻接数据副本与查询统计
package store

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/EdenChai/PathFinder/internal/graph"
	"github.com/EdenChai/PathFinder/internal/logger"
)

// Store：数据库访问入口，持有连接池并提供邻接读写与统计接口
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// ReplaceAdjacency：整体替换邻接数据集（导入工具使用）
// 背景：路由图按数据集整体生效，半成品数据不可见；在单事务内先清后插
func (s *Store) ReplaceAdjacency(ctx context.Context, adj graph.Adjacency) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM _wp_edges"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO _wp_edges(src_key, dst_lat, dst_lon) VALUES($1, $2, $3)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	count := 0
	for key, neighbors := range adj {
		for _, nb := range neighbors {
			if len(nb) != 2 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, key, nb[0], nb[1]); err != nil {
				return err
			}
			count++
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Info("adjacency_replaced", "edges", count)
	return nil
}

// LoadAdjacency：整表读取并重建邻接描述
// 约束：按主键顺序读取，保证相同数据集得到相同的邻居排列
func (s *Store) LoadAdjacency(ctx context.Context) (graph.Adjacency, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT src_key, dst_lat, dst_lon FROM _wp_edges ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	adj := make(graph.Adjacency)
	for rows.Next() {
		var key string
		var lat, lon float64
		if err := rows.Scan(&key, &lat, &lon); err != nil {
			return nil, err
		}
		adj[key] = append(adj[key], []float64{lat, lon})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("adjacency_loaded", "keys", len(adj))
	return adj, nil
}

// IncrStats：成功响应后递增累计与当日查询计数
// 约束：统计失败不影响主流程，错误静默丢弃
func (s *Store) IncrStats(ctx context.Context) error {
	_, _ = s.db.ExecContext(ctx, "UPDATE _wp_stats_total SET total_queries=total_queries+1 WHERE id=1")
	_, _ = s.db.ExecContext(ctx, "INSERT INTO _wp_stats_daily(day, queries) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET queries=_wp_stats_daily.queries+1")
	return nil
}

// Totals：统计返回结构，包含累计与当日查询次数
type Totals struct {
	Total int64
	Today int64
}

// GetTotals：读取累计与当日查询次数，用于接口返回
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_queries FROM _wp_stats_total WHERE id=1")
	_ = row.Scan(&t.Total)
	row2 := s.db.QueryRowContext(ctx, "SELECT queries FROM _wp_stats_daily WHERE day=current_date")
	_ = row2.Scan(&t.Today)
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, nil
}
