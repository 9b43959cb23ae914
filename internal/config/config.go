package config

import (
	"os"
	"strconv"
)

// Config agrupa toda la configuración del servicio, poblada desde env vars.
// main carga .env (godotenv) antes de llamar Load; en producción se usan
// variables del sistema directamente.
type Config struct {
	App    AppConfig
	Auth   AuthConfig
	MinIO  MinIOConfig
	SMTP   SMTPConfig
	Mail   MailAPIConfig
	OAuth  OAuthConfig
	Limits Limits
}

type AppConfig struct {
	Name string
	Port string
	DSN  string // si está vacío => repos in-memory (modo dev)
}

type AuthConfig struct {
	JWTSecret        string
	AccessTokenHours int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTPConfig struct {
	Host string
	Port string
	From string
	To   string // buzón de soporte (formulario de contacto)
}

// MailAPIConfig es el canal alternativo de salida: un servicio HTTP de
// plantillas (estilo EmailJS). Si BaseURL está vacío se usa SMTP.
type MailAPIConfig struct {
	BaseURL    string
	APIKey     string
	TemplateID string
}

type OAuthConfig struct {
	AuthorizeURL string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Limits son los topes de fotos por flujo. 0 significa sin límite (el flujo
// de álbum acepta tandas grandes).
type Limits struct {
	OnboardingMaxPhotos int
	MemoryMaxPhotos     int
	AlbumMaxPhotos      int
	DefaultAvatarIndex  int
	MemoriesPageSize    int
	TimelinePageSize    int
}

func Load() Config {
	return Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "mypetlife-backend"),
			Port: getEnv("PORT", "8080"),
			DSN:  os.Getenv("DB_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", "dev-secret"),
			AccessTokenHours: getEnvInt("JWT_ACCESS_HOURS", 24),
		},
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "memories"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: getEnv("SMTP_PORT", "587"),
			From: getEnv("SMTP_FROM", "noreply@mypetlife.dev"),
			To:   getEnv("CONTACT_INBOX", "support@mypetlife.dev"),
		},
		Mail: MailAPIConfig{
			BaseURL:    os.Getenv("MAIL_API_URL"),
			APIKey:     os.Getenv("MAIL_API_KEY"),
			TemplateID: getEnv("MAIL_TEMPLATE_ID", "contact_form"),
		},
		OAuth: OAuthConfig{
			AuthorizeURL: os.Getenv("OAUTH_AUTHORIZE_URL"),
			TokenURL:     os.Getenv("OAUTH_TOKEN_URL"),
			ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
			RedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		},
		Limits: Limits{
			OnboardingMaxPhotos: getEnvInt("ONBOARDING_MAX_PHOTOS", 5),
			MemoryMaxPhotos:     getEnvInt("MEMORY_MAX_PHOTOS", 5),
			AlbumMaxPhotos:      getEnvInt("ALBUM_MAX_PHOTOS", 0),
			DefaultAvatarIndex:  getEnvInt("DEFAULT_AVATAR_INDEX", 0),
			MemoriesPageSize:    getEnvInt("MEMORIES_PAGE_SIZE", 12),
			TimelinePageSize:    getEnvInt("TIMELINE_PAGE_SIZE", 10),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
