package logger

import (
	"PrintDungeon/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 安装默认 slog：stdout JSON，Logstash 可达时额外上报带 trace_id 的记录
func InitLogger(cfg config.LogstashConfig) {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})

	var finalHandler log.Handler = hStdout

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
				WithAttrs([]log.Attr{
					log.String("target_index", cfg.Index),
					log.String("log_token", cfg.Token),
				})

			finalHandler = NewTeeHandler(hStdout, &RemoteFilterHandler{next: hRemote})
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}
