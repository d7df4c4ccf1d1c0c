package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	WizardStorePostgres = "postgres"
	WizardStoreMemory   = "memory"
)

var (
	JWTSecret     string
	HodAPIBaseURL string
	HodAPIToken   string
	HodAPITimeout time.Duration
	WizardTTL     time.Duration
	WizardStore   string
	WizardCleanup string
	CORSOrigins   []string
	Port          string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	HodAPIBaseURL = strings.TrimRight(GetEnv("HOD_API_BASE_URL", "http://localhost:5000/api"), "/")
	HodAPIToken = GetEnv("HOD_API_TOKEN")
	HodAPITimeout = GetDuration("HOD_API_TIMEOUT", 15*time.Second)
	WizardTTL = GetDuration("WIZARD_SESSION_TTL", 2*time.Hour)
	WizardStore = strings.ToLower(GetEnv("WIZARD_STORE", WizardStoreMemory))
	WizardCleanup = GetEnv("WIZARD_CLEANUP_CRON", "*/10 * * * *")
	CORSOrigins = GetList("CORS_ORIGINS", "http://localhost:5173")
	Port = GetEnv("PORT", "3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if HodAPIToken == "" {
		log.Println("⚠️ HOD_API_TOKEN is not set; upstream calls without a caller token go unauthenticated")
	}
	if WizardStore != WizardStorePostgres && WizardStore != WizardStoreMemory {
		log.Printf("⚠️ Unknown WIZARD_STORE %q, falling back to %s", WizardStore, WizardStoreMemory)
		WizardStore = WizardStoreMemory
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

// GetDuration reads a Go duration ("15s") or a plain number of seconds.
func GetDuration(key string, def time.Duration) time.Duration {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("⚠️ Invalid %s=%q, using %s", key, raw, def)
	return def
}

// GetList splits a comma separated variable, dropping blanks.
func GetList(key string, def ...string) []string {
	raw := GetEnv(key)
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
