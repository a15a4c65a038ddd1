package handlers

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/middleware"
	"EmployeeManager/internal/repo"
	"EmployeeManager/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	employeeService *service.EmployeeService,
	dashboardService *service.DashboardService,
	fileService *service.FileService,
	userService *service.UserService,
	store *repo.Store,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRecover)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	employeeHandler := NewEmployeeHandler(employeeService, logger, config)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)
	exportHandler := NewExportHandler(employeeService, logger)
	fileHandler := NewFileHandler(fileService, logger, config)
	healthHandler := &HealthHandler{Check: store.Check, Logger: logger}

	r.Get("/health", healthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireReady(store.Ready))

		r.Post("/token", userHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(userHandler.activeUser))

			r.Get("/users/me", userHandler.Me)

			// Employee routes
			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.List)

				r.Get("/dashboard", dashboardHandler.Stats)
				r.Get("/dashboard/stats", dashboardHandler.Stats)
				r.Get("/export/csv", exportHandler.CSV)
				r.Get("/export/xlsx", exportHandler.XLSX)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)

					r.Post("/files/upload", fileHandler.Upload)
					r.Get("/files", fileHandler.List)
				})
			})

			// File routes
			r.Route("/files/{fileID}", func(r chi.Router) {
				r.Get("/download", fileHandler.Download)
				r.Get("/preview", fileHandler.Preview)
				r.Delete("/", fileHandler.Delete)
			})
		})
	})

	return &Handler{Router: r}
}
