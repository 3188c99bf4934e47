package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port       string
	Env        string // development | production
	DBDSN      string
	UploadsDir string
	LogFile    string

	CORSOrigins string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
	AdminEmail string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Folder    string
	S3UseSSL    bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DSN", "itemsvault.db")
	viper.SetDefault("UPLOADS_DIR", "./uploads")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "")
	viper.SetDefault("ADMIN_EMAIL", "admin@itemmanagement.com")
	viper.SetDefault("S3_USE_SSL", true)
	viper.AutomaticEnv()

	cfg := Config{
		Port:        viper.GetString("PORT"),
		Env:         viper.GetString("APP_ENV"),
		DBDSN:       viper.GetString("DB_DSN"),
		UploadsDir:  viper.GetString("UPLOADS_DIR"),
		LogFile:     viper.GetString("LOG_FILE"),
		CORSOrigins: viper.GetString("CORS_ORIGINS"),
		SMTPHost:    viper.GetString("SMTP_HOST"),
		SMTPPort:    viper.GetInt("SMTP_PORT"),
		SMTPUser:    viper.GetString("SMTP_USER"),
		SMTPPass:    viper.GetString("SMTP_PASS"),
		MailFrom:    viper.GetString("MAIL_FROM"),
		AdminEmail:  viper.GetString("ADMIN_EMAIL"),
		S3Endpoint:  viper.GetString("S3_ENDPOINT"),
		S3AccessKey: viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey: viper.GetString("S3_SECRET_KEY"),
		S3Bucket:    viper.GetString("S3_BUCKET"),
		S3Folder:    viper.GetString("S3_FOLDER"),
		S3UseSSL:    viper.GetBool("S3_USE_SSL"),
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}

	log.Printf("[config] PORT=%s APP_ENV=%s DB_DSN=%s UPLOADS_DIR=%s S3=%v",
		cfg.Port, cfg.Env, cfg.DBDSN, cfg.UploadsDir, cfg.UseObjectStorage())
	return cfg
}

// Development reports whether the dev-mode flag is set. In development the
// raw error message (never a stack) may be echoed in responses.
func (c Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// UseObjectStorage reports whether uploads go to an S3-compatible store
// instead of local disk.
func (c Config) UseObjectStorage() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}
