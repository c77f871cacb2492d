package service

import "strings"

const (
	maxEntityIDLen = 64
	maxViewerIDLen = 128

	// idSeparator 复合主键与缓存键的分隔符，单个 ID 中不允许出现
	idSeparator = "_"
)

// validID 要求非空，长度不超过列宽，且不含分隔符
func validID(id string, maxLen int) bool {
	return id != "" && len(id) <= maxLen && !strings.Contains(id, idSeparator)
}
