package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/media"
	"github.com/camden-git/policeportal/permissions"
	"github.com/camden-git/policeportal/repository"
	"github.com/camden-git/policeportal/validation"
)

type ServerOptions struct {
	AppName        string
	AllowedOrigins []string
	JWTSecret      []byte
	JWTExpiration  time.Duration
	SecureCookies  bool

	DB    *gorm.DB
	Store media.Store
	// Validator defaults to one backed by DB.
	Validator *validation.Validator
	Log       *zap.Logger
}

// Server holds the handlers behind the HTTP surface.
type Server struct {
	allowedOrigins []string
	store          media.Store
	log            *zap.Logger

	Auth        *Authenticator
	AuthHandler *AuthHandler
	Cases       *CaseHandler
	Personnel   *PersonnelHandler
	Site        *SiteHandler
	Permissions *PermissionsHandler
}

func NewServer(opts ServerOptions) *Server {
	log := opts.Log
	users := repository.NewGormUserRepository(opts.DB)

	v := opts.Validator
	if v == nil {
		v = validation.New(repository.NewLookupRepository(opts.DB))
	}

	auth := &Authenticator{
		Users:      users,
		Secret:     opts.JWTSecret,
		Expiration: opts.JWTExpiration,
		Log:        log.Named("auth"),
	}

	return &Server{
		allowedOrigins: opts.AllowedOrigins,
		store:          opts.Store,
		log:            log,
		Auth:           auth,
		AuthHandler:    &AuthHandler{Auth: auth, Secure: opts.SecureCookies},
		Cases: &CaseHandler{
			Cases:     repository.NewCaseRepository(opts.DB),
			Users:     users,
			Validator: v,
			Evidence:  media.NewAttachments(opts.Store, media.AssetTypeEvidence, log),
			Log:       log.Named("cases"),
		},
		Personnel: &PersonnelHandler{
			Personnel: repository.NewPersonnelRepository(opts.DB),
			Validator: v,
			Documents: media.NewAttachments(opts.Store, media.AssetTypeDocument, log),
			Log:       log.Named("personnel"),
		},
		Site: &SiteHandler{
			AppName:   opts.AppName,
			Auth:      auth,
			Dashboard: repository.NewDashboardRepository(opts.DB),
			Log:       log.Named("site"),
		},
		Permissions: NewPermissionsHandler(),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Get("/health-check", s.Site.HealthCheck)
	r.Get("/", s.Site.Landing)
	r.Post("/login", s.AuthHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(s.Auth.Middleware)

		r.Post("/logout", s.AuthHandler.Logout)
		r.Get("/user", s.AuthHandler.Me)
		r.Get("/permissions", s.Permissions.ListDefinedPermissions)
		r.Get("/dashboard", s.Site.ShowDashboard)
		r.Get("/storage/*", AssetServer(s.store, s.log.Named("storage")))

		r.Route("/cases", func(r chi.Router) {
			h := s.Cases
			r.With(RequirePermission(permissions.CaseView)).Get("/", h.ListCases)
			r.With(RequirePermission(permissions.CaseCreate)).Get("/create", h.CreateForm)
			r.With(RequirePermission(permissions.CaseExport)).Get("/export", h.ExportCases)
			r.With(RequirePermission(permissions.CaseCreate)).Post("/", h.CreateCase)
			r.Route("/{id}", func(r chi.Router) {
				r.With(RequirePermission(permissions.CaseView)).Get("/", h.GetCase)
				r.With(RequirePermission(permissions.CaseUpdate)).Get("/edit", h.EditForm)
				r.With(RequirePermission(permissions.CaseUpdate)).Put("/", h.UpdateCase)
				r.With(RequirePermission(permissions.CaseUpdate)).Patch("/", h.UpdateCase)
				r.With(RequirePermission(permissions.CaseDelete)).Delete("/", h.DeleteCase)
			})
		})

		r.Route("/personnel", func(r chi.Router) {
			h := s.Personnel
			r.With(RequirePermission(permissions.PersonnelView)).Get("/", h.ListPersonnel)
			r.With(RequirePermission(permissions.PersonnelCreate)).Get("/create", h.CreateForm)
			r.With(RequirePermission(permissions.PersonnelExport)).Get("/export", h.ExportPersonnel)
			r.With(RequirePermission(permissions.PersonnelCreate)).Post("/", h.CreatePersonnel)
			r.Route("/{id}", func(r chi.Router) {
				r.With(RequirePermission(permissions.PersonnelView)).Get("/", h.GetPersonnel)
				r.With(RequirePermission(permissions.PersonnelUpdate)).Get("/edit", h.EditForm)
				r.With(RequirePermission(permissions.PersonnelUpdate)).Put("/", h.UpdatePersonnel)
				r.With(RequirePermission(permissions.PersonnelUpdate)).Patch("/", h.UpdatePersonnel)
				r.With(RequirePermission(permissions.PersonnelDelete)).Delete("/", h.DeletePersonnel)
			})
		})
	})

	return r
}
