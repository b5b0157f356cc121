package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile：读取邻接 JSON 文件并构建图
// 背景：与原始数据文件格式兼容（键 "(lat, lon)"，值 [[lat, lon], ...]）；
// 文件缺失或解码失败视同构建失败，由上层决定是否终止进程
func LoadFile(path string) (*Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read %s: %w", path, err)
	}
	var adj Adjacency
	if err := json.Unmarshal(b, &adj); err != nil {
		return nil, fmt.Errorf("graph: decode %s: %w", path, err)
	}
	return Build(adj)
}
