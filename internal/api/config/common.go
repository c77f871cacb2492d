package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

const envPrefix = "PRINTDUNGEON"

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load("./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取指定目录下的 config.yaml，环境变量优先于文件
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("mongo.database", "print_dungeon")

	v.SetDefault("logstash.index", "logstash-printdungeon")

	v.SetDefault("jwt.issuer", "PrintDungeon")
	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("view.cooldown", time.Hour)
	v.SetDefault("view.cache_ttl", 5*time.Minute)
	v.SetDefault("view.cache_backend", "memory")

	v.SetDefault("analytics.batch_size", 100)
	v.SetDefault("analytics.retention", 24*time.Hour)
	v.SetDefault("analytics.purge_limit", 500)
	v.SetDefault("analytics.batch_schedule", "@every 5m")
	v.SetDefault("analytics.purge_schedule", "0 0 2 * * *")
	v.SetDefault("analytics.reconcile_roles_schedule", "@every 10m")

	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 5)
	v.SetDefault("kafka_like_consumer.topic", "canal-likes")
	v.SetDefault("kafka_like_consumer.group_id", "print-dungeon-likes")
	v.SetDefault("kafka_follow_consumer.topic", "canal-follows")
	v.SetDefault("kafka_follow_consumer.group_id", "print-dungeon-follows")
}
