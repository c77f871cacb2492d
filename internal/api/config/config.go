package config

import "time"

// Config 配置主体
type Config struct {
	Server              ServerConfig        `mapstructure:"server"`
	DB                  DBConfig            `mapstructure:"database"`
	Redis               RedisConfig         `mapstructure:"redis"`
	Mongo               MongoConfig         `mapstructure:"mongo"`
	Logstash            LogstashConfig      `mapstructure:"logstash"`
	JWT                 JWTConfig           `mapstructure:"jwt"`
	View                ViewConfig          `mapstructure:"view"`
	Analytics           AnalyticsConfig     `mapstructure:"analytics"`
	Kafka               KafkaConfig         `mapstructure:"kafka"`
	KafkaLikeConsumer   KafkaLikeConsumer   `mapstructure:"kafka_like_consumer"`
	KafkaFollowConsumer KafkaFollowConsumer `mapstructure:"kafka_follow_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"` // 为空时放行任意 Origin
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// ViewConfig 浏览去重配置
type ViewConfig struct {
	Cooldown     time.Duration `mapstructure:"cooldown"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CacheBackend string        `mapstructure:"cache_backend"` // memory | redis
}

// AnalyticsConfig 浏览缓冲区批处理配置
type AnalyticsConfig struct {
	BatchSize      int           `mapstructure:"batch_size"`
	Retention      time.Duration `mapstructure:"retention"`
	PurgeLimit     int           `mapstructure:"purge_limit"`
	BatchSchedule  string        `mapstructure:"batch_schedule"`
	PurgeSchedule  string        `mapstructure:"purge_schedule"`
	ReconcileRoles string        `mapstructure:"reconcile_roles_schedule"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaLikeConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type KafkaFollowConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
