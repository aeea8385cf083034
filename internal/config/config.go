package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	UpstreamBaseURL string // legacy .NET API kök adresi
	DatabaseDSN     string
	JWTSecret       string
	CORSOrigins     string

	// TRY dışı iş gelirleri (USD/EUR/GOLD) TL bazlı rapor toplamlarına
	// katılsın mı? Varsayılan: hayır, sadece görüntülenir.
	IncludeForeignIncome bool
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce geç (production'da env değişkenleri kullanılır)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		UpstreamBaseURL:      getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api"),
		DatabaseDSN:          getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=santiye port=5432 sslmode=disable"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		CORSOrigins:          getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		IncludeForeignIncome: getEnv("INCLUDE_FOREIGN_INCOME", "false") == "true",
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.UpstreamBaseURL == "http://localhost:5000/api" {
		log.Println("[WARN] UPSTREAM_BASE_URL varsayılan değer kullanılıyor, production için mutlaka gerçek API adresini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
