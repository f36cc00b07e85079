package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	SMTP        SMTPConfig
	Recognition RecognitionConfig
	Attendance  AttendanceConfig
	Capture     CaptureConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	Timezone           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// RecognitionConfig points at the external face recognition service
// (CompreFace-compatible REST API).
type RecognitionConfig struct {
	BaseURL             string
	APIKey              string
	DetProbThreshold    float64
	SimilarityThreshold float64
	Timeout             time.Duration
}

type AttendanceConfig struct {
	MinimumInterval     time.Duration
	WorkingHoursPerDay  float64
	WorkingDaysPerMonth float64
}

// CaptureConfig carries the fixed constants of the capture core.
// Defaults match the enrollment widget this service replaces.
type CaptureConfig struct {
	Source          string // "mjpeg" or "synthetic"
	MJPEGStreamURL  string
	IdealWidth      int
	IdealHeight     int
	PresencePeriod  time.Duration
	ZoomFallbackMin float64
	ZoomFallbackMax float64
	ZoomStep        float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			Timezone:           getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "FaceEnroll"),
		},
		Recognition: RecognitionConfig{
			BaseURL:             getEnv("COMPREFACE_URL", "http://localhost:8000"),
			APIKey:              getEnv("COMPREFACE_API_KEY", ""),
			DetProbThreshold:    getEnvAsFloat("DET_PROB_THRESHOLD", 0.8),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.80),
			Timeout:             time.Duration(getEnvAsInt("RECOGNITION_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Attendance: AttendanceConfig{
			MinimumInterval:     time.Duration(getEnvAsInt("MINIMUM_INTERVAL_MINUTES", 5)) * time.Minute,
			WorkingHoursPerDay:  getEnvAsFloat("WORKING_HOURS_PER_DAY", 8),
			WorkingDaysPerMonth: getEnvAsFloat("WORKING_DAYS_PER_MONTH", 26),
		},
		Capture: CaptureConfig{
			Source:          getEnv("CAMERA_SOURCE", "synthetic"),
			MJPEGStreamURL:  getEnv("CAMERA_MJPEG_URL", "http://localhost:8081/stream"),
			IdealWidth:      getEnvAsInt("CAMERA_IDEAL_WIDTH", 1280),
			IdealHeight:     getEnvAsInt("CAMERA_IDEAL_HEIGHT", 720),
			PresencePeriod:  time.Duration(getEnvAsInt("PRESENCE_PERIOD_MS", 500)) * time.Millisecond,
			ZoomFallbackMin: getEnvAsFloat("ZOOM_FALLBACK_MIN", 1),
			ZoomFallbackMax: getEnvAsFloat("ZOOM_FALLBACK_MAX", 3),
			ZoomStep:        getEnvAsFloat("ZOOM_STEP", 0.1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
