package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mypetlife-backend/internal/adapters/auth/oauth"
	"mypetlife-backend/internal/adapters/auth/token"
	"mypetlife-backend/internal/adapters/objectstore/memstore"
	mem "mypetlife-backend/internal/adapters/storage/memory"
	pg "mypetlife-backend/internal/adapters/storage/postgres"
	"mypetlife-backend/internal/config"
	"mypetlife-backend/internal/domain/accounts"
	"mypetlife-backend/internal/domain/albums"
	"mypetlife-backend/internal/domain/contact"
	"mypetlife-backend/internal/domain/dashboard"
	"mypetlife-backend/internal/domain/memories"
	"mypetlife-backend/internal/domain/pets"
	"mypetlife-backend/internal/domain/timeline"
	"mypetlife-backend/internal/domain/workflows"
	"mypetlife-backend/internal/middleware"
	"mypetlife-backend/internal/platform/logger"
	"mypetlife-backend/internal/ports/auth"
	"mypetlife-backend/internal/ports/notify"
	"mypetlife-backend/internal/ports/objectstore"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene, usa ese object store. Si no, in-memory.
	Store objectstore.Store

	// Opcional: mailer del formulario de contacto. Nil deshabilita el envío
	// real (contact responde error de entrega).
	Sender notify.Sender
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	cfg := opts.Config

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		accountsRepo accounts.Repository
		petsRepo     pets.Repository
		memoriesRepo memories.Repository
		albumsRepo   albums.Repository
		timelineRepo timeline.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		dsn := cfg.App.DSN
		if dsn == "" {
			dsn = os.Getenv("DB_DSN")
		}
		if dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		accountsRepo = pg.NewAccountsRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		memoriesRepo = pg.NewMemoriesRepo(db)
		albumsRepo = pg.NewAlbumsRepo(db)
		timelineRepo = pg.NewTimelineRepo(db)
	} else {
		accountsRepo = mem.NewAccountsRepo()
		petsRepo = mem.NewPetsRepo()
		memoriesRepo = mem.NewMemoriesRepo()
		albumsRepo = mem.NewAlbumsRepo()
		timelineRepo = mem.NewTimelineRepo()
	}

	store := opts.Store
	if store == nil {
		store = memstore.New()
	}

	issuer := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTokenHours)*time.Hour)
	oauthClient := oauth.NewClient(oauth.Config{
		AuthorizeURL: cfg.OAuth.AuthorizeURL,
		TokenURL:     cfg.OAuth.TokenURL,
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
	})

	// Services por módulo
	accountsSvc := accounts.NewService(accountsRepo, issuer)
	petsSvc := pets.NewService(petsRepo)
	memoriesSvc := memories.NewService(memoriesRepo)
	albumsSvc := albums.NewService(albumsRepo)
	timelineSvc := timeline.NewService(timelineRepo)

	workflowsSvc := workflows.NewService(petsSvc, memoriesSvc, albumsSvc, timelineSvc, store, cfg.Limits, log)
	dashboardSvc := dashboard.NewService(accountsSvc, petsSvc, memoriesSvc, albumsSvc, timelineSvc, cfg.Limits, log)
	contactSvc := contact.NewService(opts.Sender, cfg.Mail.TemplateID, log)

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, oauthClient)
	pets.RegisterRoutes(r, petsSvc)
	memories.RegisterRoutes(r, memoriesSvc, cfg.Limits.MemoriesPageSize)
	albums.RegisterRoutes(r, albumsSvc, memoriesSvc)
	timeline.RegisterRoutes(r, timelineSvc, cfg.Limits.TimelinePageSize)
	workflows.RegisterRoutes(r, workflowsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)
	contact.RegisterRoutes(r, contactSvc)

	return r
}
