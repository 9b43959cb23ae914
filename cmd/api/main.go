package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"mypetlife-backend/internal/adapters/auth/token"
	"mypetlife-backend/internal/adapters/notify/httpmail"
	"mypetlife-backend/internal/adapters/notify/smtpmail"
	"mypetlife-backend/internal/adapters/objectstore/miniostore"
	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/platform/logger"
	"mypetlife-backend/internal/ports/notify"
	"mypetlife-backend/internal/ports/objectstore"
	"mypetlife-backend/internal/router"
)

func main() {
	// .env si existe; en prod las vars vienen del entorno
	_ = godotenv.Load()

	cfg := config.Load()
	lg := logger.NewFromEnv(cfg.App.Name)

	manager := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTokenHours)*time.Hour)
	verifier := token.NewVerifier(manager)

	var store objectstore.Store
	if cfg.MinIO.Endpoint != "" {
		s, err := miniostore.New(cfg.MinIO)
		if err != nil {
			log.Fatalf("minio: %v", err)
		}
		store = s
		lg.Info("object store: minio", map[string]any{"endpoint": cfg.MinIO.Endpoint, "bucket": cfg.MinIO.Bucket})
	} else {
		lg.Warn("object store: in-memory (sin MINIO_ENDPOINT, solo dev)", nil)
	}

	var sender notify.Sender
	if cfg.Mail.BaseURL != "" {
		s, err := httpmail.New(cfg.Mail)
		if err != nil {
			log.Fatalf("mail api: %v", err)
		}
		sender = s
	} else if cfg.SMTP.Host != "" {
		sender = smtpmail.New(cfg.SMTP)
	}

	r := router.NewRouter(router.Options{
		Config:       cfg,
		Logger:       lg,
		AuthVerifier: verifier,
		Store:        store,
		Sender:       sender,
	})

	addr := ":" + cfg.App.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // las subidas de fotos tardan más que un GET
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
