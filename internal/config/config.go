package config

import (
	"fmt"
	"time"

	"learning_buddy_backend/internal/engine"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Storage        StorageConfig
	Catalog        CatalogConfig        `mapstructure:"catalog"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
	Redis          RedisConfig
	Log            LogConfig            `mapstructure:"log"`
	CORS           CORSConfig           `mapstructure:"cors"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool   `mapstructure:"-"`
	MigrateOnly  bool   `mapstructure:"-"`
	SeedFile     string `mapstructure:"-"`
	ConfigFile   string `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
}

// CatalogConfig 参考数据（学习路径/课程/题库）来源
type CatalogConfig struct {
	Source        string `mapstructure:"source"` // file | minio
	Path          string `mapstructure:"path"`
	Object        string `mapstructure:"object"`
	ReloadChannel string `mapstructure:"reload_channel"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// RecommendationConfig 推荐引擎的全部权重常量，支持热更新
type RecommendationConfig struct {
	InterestWeight         float64 `mapstructure:"interest_weight"`
	QuizWeight             float64 `mapstructure:"quiz_weight"`
	NeutralQuizScore       float64 `mapstructure:"neutral_quiz_score"`
	WeakThreshold          float64 `mapstructure:"weak_threshold"`
	CategoryMatchWeight    float64 `mapstructure:"category_match_weight"`
	LevelFitWeight         float64 `mapstructure:"level_fit_weight"`
	IntermediateTierFloor  float64 `mapstructure:"intermediate_tier_floor"`
	AdvancedTierFloor      float64 `mapstructure:"advanced_tier_floor"`
	ColdStartCategoryMatch float64 `mapstructure:"cold_start_category_match"`
	DefaultTopN            int     `mapstructure:"default_top_n"`
	MaxCompletedSkills     int     `mapstructure:"max_completed_skills"`
	MaxWeakAreas           int     `mapstructure:"max_weak_areas"`
}

func (r RecommendationConfig) Weights() engine.Weights {
	return engine.Weights{
		InterestWeight:         r.InterestWeight,
		QuizWeight:             r.QuizWeight,
		NeutralQuizScore:       r.NeutralQuizScore,
		WeakThreshold:          r.WeakThreshold,
		CategoryMatchWeight:    r.CategoryMatchWeight,
		LevelFitWeight:         r.LevelFitWeight,
		IntermediateTierFloor:  r.IntermediateTierFloor,
		AdvancedTierFloor:      r.AdvancedTierFloor,
		ColdStartCategoryMatch: r.ColdStartCategoryMatch,
		DefaultTopN:            r.DefaultTopN,
		MaxCompletedSkills:     r.MaxCompletedSkills,
		MaxWeakAreas:           r.MaxWeakAreas,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.path", "learning_buddy.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)

	v.SetDefault("jwt.expire_hours", 72)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "data")

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "configs/catalog.yaml")
	v.SetDefault("catalog.object", "catalog.yaml")
	v.SetDefault("catalog.reload_channel", "catalog:reload")

	v.SetDefault("log.filename", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)

	w := engine.DefaultWeights()
	v.SetDefault("recommendation.interest_weight", w.InterestWeight)
	v.SetDefault("recommendation.quiz_weight", w.QuizWeight)
	v.SetDefault("recommendation.neutral_quiz_score", w.NeutralQuizScore)
	v.SetDefault("recommendation.weak_threshold", w.WeakThreshold)
	v.SetDefault("recommendation.category_match_weight", w.CategoryMatchWeight)
	v.SetDefault("recommendation.level_fit_weight", w.LevelFitWeight)
	v.SetDefault("recommendation.intermediate_tier_floor", w.IntermediateTierFloor)
	v.SetDefault("recommendation.advanced_tier_floor", w.AdvancedTierFloor)
	v.SetDefault("recommendation.cold_start_category_match", w.ColdStartCategoryMatch)
	v.SetDefault("recommendation.default_top_n", w.DefaultTopN)
	v.SetDefault("recommendation.max_completed_skills", w.MaxCompletedSkills)
	v.SetDefault("recommendation.max_weak_areas", w.MaxWeakAreas)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LEARNING_BUDDY")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Storage / MinIO
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Catalog
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if err := cfg.Recommendation.Weights().Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}

	return &cfg, nil
}
