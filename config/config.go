package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	Env               string        `mapstructure:"ENV"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTExpires        time.Duration `mapstructure:"JWT_EXPIRES"`
	BcryptCost        int           `mapstructure:"BCRYPT_COST"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string        `mapstructure:"CORS_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	OTPTTL time.Duration `mapstructure:"OTP_TTL"`

	// Outgoing mail.
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPTLS       string `mapstructure:"SMTP_TLS"`
	MailFrom      string `mapstructure:"MAIL_FROM"`
	RunMailWorker bool   `mapstructure:"RUN_MAIL_WORKER"`

	// Cloudinary uploads.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Gemini autocomplete.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	AdminSignupEnabled bool `mapstructure:"ADMIN_SIGNUP_ENABLED"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "9090")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "amedick")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRES", "1h")
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_OTP_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("OTP_TTL", "5m")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_TLS", "mandatory")
	viper.SetDefault("MAIL_FROM", "AmedicK <no-reply@amedick.local>")
	viper.SetDefault("RUN_MAIL_WORKER", true)
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "amedick")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ADMIN_SIGNUP_ENABLED", true)
}

// LoadConfig reads .env, config.yaml and the environment, in that order of precedence (lowest first).
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Println("JWT_SECRET not set, using an insecure development secret")
		AppConfig.JWTSecret = "amedick-dev-secret"
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
