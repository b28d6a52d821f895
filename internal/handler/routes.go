package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Init builds the router. Routes mirror the public API: open auth and
// catalog endpoints, session-guarded user endpoints, and an admin-guarded
// management group.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(h.requestLogger)

	// The SPA is served from another origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Server is working"))
	})

	router.Route("/api", func(api chi.Router) {
		api.Post("/user/register", h.register)
		api.Post("/user/verify", h.verifyUser)
		api.Post("/user/login", h.login)
		api.Post("/user/forgot", h.forgotPassword)
		api.Post("/user/reset", h.resetPassword)

		api.Get("/course/all", h.getAllCourses)
		api.Get("/course/{id}", h.getCourse)

		api.Group(func(protected chi.Router) {
			protected.Use(h.sessionGuard)

			protected.Get("/user/me", h.myProfile)
			protected.Get("/lectures/{id}", h.fetchLectures)
			protected.Get("/lecture/{id}", h.fetchLecture)
			protected.Get("/mycourse", h.myCourses)
			protected.Post("/course/checkout/{id}", h.checkout)
			protected.Post("/verification/{id}", h.paymentVerification)
			protected.Post("/user/progress", h.addProgress)
			protected.Get("/user/progress", h.getProgress)

			protected.Group(func(admin chi.Router) {
				admin.Use(h.adminOnly)

				admin.Post("/course/new", h.createCourse)
				admin.Post("/course/{id}", h.addLecture)
				admin.Delete("/course/{id}", h.deleteCourse)
				admin.Delete("/lecture/{id}", h.deleteLecture)
				admin.Get("/stats", h.getStats)
				admin.Get("/users", h.getAllUsers)
				admin.Put("/user/{id}", h.updateRole)
			})
		})
	})

	// Uploaded posters and lecture videos are served as static files.
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.cfg.UploadDir)))
	router.Get("/uploads/*", uploads.ServeHTTP)

	return router
}
