package kafka

import (
	"fmt"
	"strconv"
)

// Canal 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CanalMessage Canal 推送到 Kafka 的 JSON 结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`

	// Data 变更后的行，Canal 以字符串形式输出列值
	Data []map[string]interface{} `json:"data"`
	Old  []map[string]interface{} `json:"old"`
}

// Str 读取列值为字符串，缺失时返回空串
func Str(row map[string]interface{}, column string) string {
	switch v := row[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
