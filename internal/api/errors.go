package api

import (
	"encoding/json"
	"net/http"

	"github.com/EdenChai/PathFinder/internal/metrics"
)

// 文档注释：单次查询的结构化失败
// 背景：校验、吸附、搜索各阶段的失败需映射到可区分的状态码与错误码，
// 且仅影响当次查询，不触碰共享快照与后续请求
type queryError struct {
	status int
	code   string
	msg    string
}

func (e *queryError) Error() string { return e.msg }

func errValidation(msg string) *queryError {
	return &queryError{status: http.StatusBadRequest, code: "validation", msg: msg}
}

var (
	// 原始起终点完全相同，吸附前即拒绝
	errIdenticalEndpoints = &queryError{
		status: http.StatusBadRequest,
		code:   "identical_endpoints",
		msg:    "start and end are the same point",
	}
	// 不同原始输入吸附到同一路点，搜索前拒绝
	errSnapCollision = &queryError{
		status: http.StatusConflict,
		code:   "snap_collision",
		msg:    "start and end snap to the same waypoint",
	}
	// 起终点位于不同连通分量；与输入错误可区分
	errNoPath = &queryError{
		status: http.StatusNotFound,
		code:   "no_path",
		msg:    "no path found between the provided points",
	}
	errNotReady = &queryError{
		status: http.StatusServiceUnavailable,
		code:   "not_ready",
		msg:    "routing graph is not ready",
	}
)

func writeError(w http.ResponseWriter, e *queryError) {
	metrics.RejectedTotal.WithLabelValues(e.code).Inc()
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(e.status)
	_ = json.NewEncoder(w).Encode(apiError{Error: e.msg, Code: e.code})
}
