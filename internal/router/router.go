package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"woofpoint-backend/internal/adapters/auth/jwtauth"
	mem "woofpoint-backend/internal/adapters/storage/memory"
	pg "woofpoint-backend/internal/adapters/storage/postgres"
	s3store "woofpoint-backend/internal/adapters/storage/s3"
	"woofpoint-backend/internal/domain/owners"
	"woofpoint-backend/internal/domain/trainers"
	"woofpoint-backend/internal/domain/users"
	"woofpoint-backend/internal/middleware"
	"woofpoint-backend/internal/platform/logger"
	"woofpoint-backend/internal/ports/auth"
	"woofpoint-backend/internal/ports/objectstore"
)

type Options struct {
	// Tokens firma y verifica los JWT. Si viene nil se arma desde env
	// (JWT_SECRET, con fallback dev).
	Tokens auth.TokenService

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: bucket de fotos. Si viene nil: S3 por env
	// (AWS_S3_BUCKET / AWS_REGION) o el fake in-memory.
	Objects objectstore.Store

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = jwtauth.NewServiceFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Claims opcionales en todo el árbol; el gate estricto va por ruta.
	r.Use(middleware.AuthContext(tokens))
	gate := middleware.RequireAuth(tokens)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo    users.Repository
		ownersRepo   owners.Repository
		trainersRepo trainers.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		ownersRepo = pg.NewOwnersRepo(db)
		trainersRepo = pg.NewTrainersRepo(db)
	} else {
		usersRepo = mem.NewUserRepo()
		ownersRepo = mem.NewOwnerRepo()
		trainersRepo = mem.NewTrainerRepo()
	}

	objects := opts.Objects
	if objects == nil {
		if bucket := os.Getenv("AWS_S3_BUCKET"); bucket != "" {
			store, err := s3store.New(context.Background(), s3store.Config{
				Bucket: bucket,
				Region: os.Getenv("AWS_REGION"),
			})
			if err == nil {
				objects = store
			} else {
				log.Warn("s3 unavailable, falling back to memory object store", map[string]any{"error": err.Error()})
			}
		}
	}
	if objects == nil {
		objects = mem.NewObjectStore()
	}

	// Services por módulo
	ownersSvc := owners.NewService(usersRepo, ownersRepo, objects)
	trainersSvc := trainers.NewService(usersRepo, trainersRepo, objects)
	usersSvc := users.NewService(usersRepo, tokens, objects, ownersSvc, trainersSvc)

	// Rutas por módulo. El directorio de trainers se monta bajo /owner
	// adentro de owners.RegisterRoutes.
	users.RegisterRoutes(r, usersSvc, gate, log)
	owners.RegisterRoutes(r, ownersSvc, trainersSvc, gate, log)
	trainers.RegisterRoutes(r, trainersSvc, gate, log)

	return r
}
