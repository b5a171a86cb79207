// Package httpapi is the public HTTP surface of the clinic backend: the JSON
// API, admin sign-in and the gated admin pages.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/clinic/internal/logging"
	"github.com/dmitrijs2005/clinic/internal/server/config"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Config       *config.Config
	Logger       logging.Logger
	Tokens       TokenVerifier
	Admins       AdminAuth
	Comments     Comments
	Doctors      CRUD[models.Doctor, models.DoctorPatch]
	Services     CRUD[models.Service, models.ServicePatch]
	Posts        CRUD[models.BlogPost, models.BlogPostPatch]
	Appointments CRUD[models.Appointment, models.AppointmentPatch]
	Media        Media
	DB           Pinger
}

func NewRouter(d Deps) http.Handler {
	log := d.Logger
	gate := SessionGate(d.Tokens)
	limiter := NewIPRateLimiter(d.Config.LoginRatePerMinute, d.Config.LoginBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if d.Config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", healthz(d.DB, log))

	ah := &authHandlers{
		admins:       d.Admins,
		logger:       log,
		cookieSecure: d.Config.CookieSecure,
		validity:     d.Config.TokenValidityDuration,
	}
	r.Route("/admin", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/login", ah.login)
		r.Post("/logout", ah.logout)
		r.With(gate).Get("/me", ah.me)
	})

	r.With(gate).Get("/admin.html", servePage(d.Config.PagesDir, "admin.html"))
	r.Get(LoginPage, servePage(d.Config.PagesDir, "admin-login.html"))

	ch := &commentHandlers{comments: d.Comments, logger: log}
	mh := &mediaHandlers{media: d.Media, logger: log}

	r.Route("/api", func(r chi.Router) {
		r.Get("/posts/{postID}/comments", ch.tree)
		r.Post("/posts/{postID}/comments", ch.create)
		r.With(gate).Delete("/comments/{id}", ch.delete)

		r.Mount("/doctors", (&crudHandlers[models.Doctor, models.DoctorPatch]{
			svc: d.Doctors, logger: log,
		}).routes(gate, access{publicRead: true}))

		r.Mount("/services", (&crudHandlers[models.Service, models.ServicePatch]{
			svc: d.Services, logger: log,
		}).routes(gate, access{publicRead: true}))

		r.Mount("/posts", (&crudHandlers[models.BlogPost, models.BlogPostPatch]{
			svc: d.Posts, logger: log,
		}).routes(gate, access{publicRead: true}))

		r.Mount("/appointments", (&crudHandlers[models.Appointment, models.AppointmentPatch]{
			svc: d.Appointments, logger: log,
			// visitors cannot pick the status of their own request
			prepare: func(a *models.Appointment) { a.Status = "" },
		}).routes(gate, access{publicCreate: true}))

		r.With(gate).Post("/uploads", mh.upload)
	})

	r.Get("/media/*", mh.download)

	return r
}
