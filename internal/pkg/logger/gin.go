package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
	ClientIP    string `json:"client_ip"`
}

// SetupGin 安装 JSON 访问日志和 Recovery
func SetupGin(r *gin.Engine, index, token string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if p.Keys != nil {
				if id, ok := p.Keys[TraceIDKey].(string); ok {
					traceID = id
				}
			}

			if traceID == "" && p.Request != nil {
				if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
					traceID = id
				}
			}

			line, err := json.Marshal(accessLine{
				Time:        p.TimeStamp.Format(time.RFC3339),
				Level:       "INFO",
				Msg:         "GIN_ACCESS",
				TraceID:     traceID,
				LogToken:    token,
				TargetIndex: index,
				Method:      p.Method,
				Path:        p.Path,
				Status:      p.StatusCode,
				Latency:     p.Latency.String(),
				ClientIP:    p.ClientIP,
			})
			if err != nil {
				return ""
			}
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
