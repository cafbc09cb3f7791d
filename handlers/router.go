package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/metrics"
	"github.com/kevinaaaquil/myb/backend/middleware"
	"github.com/kevinaaaquil/myb/backend/service"
	"github.com/kevinaaaquil/myb/backend/store"
	"github.com/kevinaaaquil/myb/backend/utils"
	"github.com/kevinaaaquil/myb/backend/validation"
	"go.uber.org/zap"
)

type RouterConfig struct {
	DB       *store.DB
	Validate *validation.Validator
	Logger   *zap.Logger
	Tokens   *middleware.TokenIssuer

	AdminUser     string
	AdminPass     string
	AdminPassHash string

	Content           service.ContentStore
	MaxUploadBytes    int64
	UploadRequireAuth bool

	// TrustProxy rewrites the client address from X-Forwarded-For / X-Real-IP. Leave it off
	// unless a proxy sets those headers, since clients can forge them.
	TrustProxy bool
	// LoginLimiter throttles POST /auth/login when set.
	LoginLimiter *middleware.RateLimiter
	// Notifier receives new reports when set.
	Notifier ReportNotifier

	StaticDir string
	Port      int
	LANAddrs  func() []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Validate == nil {
		cfg.Validate = validation.New()
	}
	if cfg.LANAddrs == nil {
		cfg.LANAddrs = LANAddrs
	}
	base := &Base{DB: cfg.DB, Validate: cfg.Validate, Logger: cfg.Logger}
	authH := &AuthHandler{
		Tokens:        cfg.Tokens,
		AdminUser:     cfg.AdminUser,
		AdminPass:     cfg.AdminPass,
		AdminPassHash: cfg.AdminPassHash,
		Logger:        cfg.Logger,
	}
	booksH := &BooksHandler{Base: base}
	usersH := &UsersHandler{Base: base}
	chaptersH := &ChaptersHandler{Base: base}
	purchasesH := &PurchasesHandler{Base: base}
	progressH := &ProgressHandler{Base: base}
	commentsH := &CommentsHandler{Base: base}
	reportsH := &ReportsHandler{Base: base, Notifier: cfg.Notifier}
	uploadH := &UploadHandler{Store: cfg.Content, MaxBytes: cfg.MaxUploadBytes, Logger: cfg.Logger}

	requireAuth := middleware.Auth(cfg.Tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.AllowAll())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, apperr.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	r.Get("/health", Health)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/server-info", ServerInfo(cfg.Port, cfg.LANAddrs))

	r.Route("/auth", func(r chi.Router) {
		if cfg.LoginLimiter != nil {
			r.With(cfg.LoginLimiter.Handler).Post("/login", authH.Login)
		} else {
			r.Post("/login", authH.Login)
		}
		r.With(requireAuth).Get("/me", authH.Me)
	})

	r.Route("/tables", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", booksH.List)
			r.With(requireAuth).Post("/", booksH.Create)
			r.With(requireAuth).Put("/{id}", booksH.Update)
			r.With(requireAuth).Delete("/{id}", booksH.Delete)
			r.Patch("/{id}", booksH.PatchCounters)
			r.Get("/{id}/chapters", booksH.Chapters)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersH.List)
			r.Post("/", usersH.Signup)
		})
		r.Route("/chapters", func(r chi.Router) {
			r.Get("/", chaptersH.List)
			r.Post("/", chaptersH.Create)
			r.With(requireAuth, middleware.RequireAdmin).Put("/{id}", chaptersH.Update)
			r.With(requireAuth, middleware.RequireAdmin).Delete("/{id}", chaptersH.Delete)
		})
		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", purchasesH.List)
			r.Post("/", purchasesH.Create)
		})
		r.Route("/reading_progress", func(r chi.Router) {
			r.Get("/", progressH.List)
			r.Post("/", progressH.Create)
			r.Patch("/{id}", progressH.Patch)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportsH.List)
			r.Post("/", reportsH.Create)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentsH.List)
			r.With(requireAuth).Post("/", commentsH.Create)
		})
	})

	if cfg.UploadRequireAuth {
		r.With(requireAuth, middleware.RequireAdmin).Post("/upload", uploadH.Upload)
	} else {
		r.Post("/upload", uploadH.Upload)
	}
	r.Get("/uploads/{name}", uploadH.Serve)

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return r
}
