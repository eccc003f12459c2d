package config

import (
	"bytes"
	_ "embed"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	HTTP      HTTPConfig       `mapstructure:"http"`
	MySQL     DatabaseConfig   `mapstructure:"mysql"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Kafka     KafkaConfig      `mapstructure:"kafka"`
	Session   SessionConfig    `mapstructure:"session"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	Notifier  NotifierConfig   `mapstructure:"notifier"`
	Relay     RelayConfig      `mapstructure:"relay"`
	Providers []ProviderConfig `mapstructure:"providers"`
	Site      SiteConfig       `mapstructure:"site"`
	Admin     AdminSeedConfig  `mapstructure:"admin"`
}

// ---- Leaf structs ----

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json|console
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// BehindProxy trusts X-Forwarded-For, but only from TrustedProxies (CIDRs).
	BehindProxy    bool     `mapstructure:"behind_proxy"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type KafkaConfig struct {
	Brokers        []string `mapstructure:"brokers"`
	GroupID        string   `mapstructure:"group_id"`
	MinBytes       int      `mapstructure:"min_bytes"`
	MaxBytes       int      `mapstructure:"max_bytes"`
	CommitInterval int      `mapstructure:"commit_interval_ms"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
}

type RateLimitConfig struct {
	// Contact submissions per client IP per window.
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
}

type NotifierConfig struct {
	WorkerCount int           `mapstructure:"worker_count"`
	BatchSize   int           `mapstructure:"batch_size"`
	BatchWait   time.Duration `mapstructure:"batch_wait"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type RelayConfig struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type BreakerConfig struct {
	FailThreshold int `mapstructure:"fail_threshold" yaml:"fail_threshold"`
	OpenForMs     int `mapstructure:"open_for_ms"    yaml:"open_for_ms"`
}

type ProviderConfig struct {
	Name      string        `mapstructure:"name"`
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"`
	Path      string        `mapstructure:"path"`
	APIKey    string        `mapstructure:"api_key"`
	TimeoutMs int           `mapstructure:"timeout_ms"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// SiteConfig carries the business details printed on pages and in emails.
type SiteConfig struct {
	CompanyName  string `mapstructure:"company_name"`
	OwnerName    string `mapstructure:"owner_name"`
	Email        string `mapstructure:"email"`
	Phone        string `mapstructure:"phone"`
	WhatsApp     string `mapstructure:"whatsapp"`
	DashboardURL string `mapstructure:"dashboard_url"`
}

type AdminSeedConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (MEKI_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (MEKI_*), e.g. MEKI_MYSQL_DSN
	v.SetEnvPrefix("MEKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
