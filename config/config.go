package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"
)

const (
	DefaultJWTSecret = "change-this-secret"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      int    `env:"PORT,default=4000"`
	Host      string `env:"HOST,default=0.0.0.0"`
	StaticDir string `env:"STATIC_DIR"`

	StoreBackend string `env:"STORE_BACKEND,default=file"`
	DataDir      string `env:"DATA_DIR,default=./data"`
	SQLitePath   string `env:"SQLITE_PATH,default=./data/myb.db"`
	MongoURI     string `env:"MONGODB_URI,default=mongodb://localhost:27017"`
	MongoDB      string `env:"MONGODB_DB,default=myb"`

	JWTSecret     string        `env:"JWT_SECRET,default=change-this-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,default=12h"`
	AdminUser     string        `env:"ADMIN_USER,default=admin"`
	AdminPass     string        `env:"ADMIN_PASS"`
	AdminPassHash string        `env:"ADMIN_PASS_HASH"`

	UploadsDir        string `env:"UPLOADS_DIR,default=./uploads"`
	MaxUploadMB       int64  `env:"MAX_UPLOAD_MB,default=50"`
	UploadRequireAuth bool   `env:"UPLOAD_REQUIRE_AUTH,default=false"`
	S3Bucket          string `env:"AWS_S3_BUCKET"`
	S3Region          string `env:"AWS_REGION,default=us-east-1"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey       string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Prefix          string `env:"AWS_S3_PREFIX,default=uploads/"`

	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT,default=587"`
	SMTPUser         string `env:"SMTP_USER"`
	SMTPPass         string `env:"SMTP_PASS"`
	ReportNotifyFrom string `env:"REPORT_NOTIFY_FROM"`
	ReportNotifyTo   string `env:"REPORT_NOTIFY_TO"`

	LoginRatePerMin int    `env:"LOGIN_RATE_PER_MIN,default=10"`
	// TrustProxy makes X-Forwarded-For and X-Real-IP the client address. Only enable it behind
	// a proxy that overwrites those headers.
	TrustProxy      bool   `env:"TRUST_PROXY,default=false"`
	LogLevel        string `env:"LOG_LEVEL,default=info"`
	Environment     string `env:"ENVIRONMENT,default=development"`
}

// Load reads the process environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite, BackendMongo:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of file, sqlite, mongo (got %q)", c.StoreBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.LoginRatePerMin < 0 {
		return errors.New("LOGIN_RATE_PER_MIN must not be negative")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// ValidateEnv logs which optional features are active and refuses to run a production
// server with the default JWT secret. Secret values are never logged.
func ValidateEnv(cfg *Config, logger *zap.Logger) error {
	logger.Info("config loaded",
		zap.String("addr", cfg.Addr()),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("environment", cfg.Environment),
		zap.Duration("token_ttl", cfg.TokenTTL),
		zap.Int64("max_upload_mb", cfg.MaxUploadMB),
		zap.Bool("upload_require_auth", cfg.UploadRequireAuth),
		zap.Bool("s3", cfg.S3Bucket != ""),
		zap.Bool("report_notifications", cfg.SMTPHost != "" && cfg.ReportNotifyTo != ""),
		zap.Bool("static", cfg.StaticDir != ""),
		zap.Bool("trust_proxy", cfg.TrustProxy),
	)

	if cfg.JWTSecret == DefaultJWTSecret {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET must be changed from the default in production")
		}
		logger.Warn("JWT_SECRET is the default value; tokens can be forged by anyone who knows it")
	}
	if cfg.AdminPass == "" && cfg.AdminPassHash == "" {
		logger.Warn("ADMIN_PASS and ADMIN_PASS_HASH are unset; admin login is disabled")
	} else if cfg.AdminPassHash == "" {
		logger.Warn("admin password is compared in clear text; set ADMIN_PASS_HASH to a bcrypt hash")
	}
	if !cfg.UploadRequireAuth {
		logger.Warn("POST /upload accepts anonymous uploads; set UPLOAD_REQUIRE_AUTH=true to restrict it")
	}
	if cfg.S3Bucket != "" && (cfg.S3AccessKeyID == "") != (cfg.S3SecretKey == "") {
		logger.Warn("only one of AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY is set; falling back to the default credential chain")
	}
	return nil
}
