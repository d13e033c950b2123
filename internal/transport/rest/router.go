package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mfauzanap/event-registration/internal/auth"
	"github.com/mfauzanap/event-registration/internal/directory"
	"github.com/mfauzanap/event-registration/internal/event"
	"github.com/mfauzanap/event-registration/internal/formschema"
	"github.com/mfauzanap/event-registration/internal/inscription"
	"github.com/mfauzanap/event-registration/internal/notification"
	"github.com/mfauzanap/event-registration/internal/report"
	"github.com/mfauzanap/event-registration/internal/transport/middleware"
	"github.com/mfauzanap/event-registration/internal/transport/swagger"
	"github.com/mfauzanap/event-registration/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Directory    *directory.Handler
	Event        *event.Handler
	FormSchema   *formschema.Handler
	Inscription  *inscription.Handler
	Notification *notification.Handler
	Report       *report.Handler
}

// RouterConfig carries the non-handler dependencies of the router.
type RouterConfig struct {
	DB             *sql.DB
	Logger         *slog.Logger
	AllowedOrigins string
	UploadsDir     string
}

// NewRouter wires the full HTTP surface under /api/v1.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	health := NewHealthHandler(cfg.DB)
	requireAuth := h.Auth.AuthMiddleware
	requireAdmin := auth.RequireAdmin(cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", health.pingHandler)
		r.Get("/health", health.healthCheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/register", h.Auth.Register)
			r.With(requireAuth).Post("/logout", h.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)
				r.Post("/{id}/profile-picture", h.User.UploadProfilePicture)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Get("/", h.User.ListUsers)
					r.Post("/", h.User.CreateUser)
					r.Post("/bulk", h.User.BulkImport)
					r.Get("/{id}", h.User.GetUser)
					r.Patch("/{id}", h.User.UpdateUser)
					r.Delete("/{id}", h.User.DeleteUser)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Directory.ListRoles)
				r.Get("/{id}", h.Directory.GetRole)
				r.With(requireAdmin).Post("/", h.Directory.CreateRole)
				r.With(requireAdmin).Patch("/{id}", h.Directory.UpdateRole)
				r.With(requireAdmin).Delete("/{id}", h.Directory.DeleteRole)
			})

			r.Route("/departements", func(r chi.Router) {
				r.Get("/", h.Directory.ListDepartments)
				r.Get("/{id}", h.Directory.GetDepartment)
				r.With(requireAdmin).Post("/", h.Directory.CreateDepartment)
				r.With(requireAdmin).Patch("/{id}", h.Directory.UpdateDepartment)
				r.With(requireAdmin).Delete("/{id}", h.Directory.DeleteDepartment)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Event.ListEvents)
				r.Get("/{id}", h.Event.GetEvent)
				r.With(requireAdmin).Post("/", h.Event.CreateEvent)
				r.With(requireAdmin).Patch("/{id}", h.Event.UpdateEvent)
				r.With(requireAdmin).Delete("/{id}", h.Event.DeleteEvent)

				r.Get("/{id}/fields", h.FormSchema.ListFields)
				r.With(requireAdmin).Put("/{id}/fields", h.FormSchema.ReplaceFields)
				r.With(requireAdmin).Post("/{id}/form-fields", h.FormSchema.CreateField)

				r.Post("/{id}/inscriptions", h.Inscription.CreateInscription)
				r.With(requireAdmin).Get("/{id}/inscriptions", h.Inscription.ListByEvent)
			})

			r.Get("/form-field-types", h.FormSchema.ListFieldTypes)
			r.With(requireAdmin).Patch("/form-fields/{id}", h.FormSchema.UpdateField)
			r.With(requireAdmin).Delete("/form-fields/{id}", h.FormSchema.DeleteField)

			r.Route("/inscriptions", func(r chi.Router) {
				r.Get("/{id}", h.Inscription.GetInscription)
				r.Delete("/{id}", h.Inscription.CancelInscription)
				r.Post("/{id}/responses", h.Inscription.SubmitResponses)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Patch("/{id}/read", h.Notification.MarkRead)
				r.Patch("/read-all", h.Notification.MarkAllRead)
			})

			r.Route("/admin/dashboard", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", h.Report.Dashboard)
				r.Get("/registrations-per-event", h.Report.RegistrationsPerEvent)
				r.Get("/registrations-over-time", h.Report.RegistrationsOverTime)
				r.Get("/registrations-by-department", h.Report.RegistrationsByDepartment)
				r.Get("/event-status-counts", h.Report.EventStatusCounts)
			})
		})
	})

	// Uploaded files are public by path; the uuid names are unguessable.
	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Get("/openapi.yml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yml")
	})
	r.Get("/swagger/*", swagger.Handler().ServeHTTP)

	return r
}
