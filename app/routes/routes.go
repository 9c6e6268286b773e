package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio/app/config"
	"portfolio/app/controllers"
	"portfolio/app/mailer"
	"portfolio/app/middleware"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"
	"portfolio/app/session"
	"portfolio/app/views"
)

// SetupRoutes wires repositories, services and controllers on top of store
// and returns the site handler with the global middleware applied.
func SetupRoutes(cfg *config.Config, store *repositories.Store, sender mailer.Sender, logger *zap.Logger) (http.Handler, error) {
	db := store.DB()
	projectRepo := repositories.NewBadgerProjectRepository(db)
	blogRepo := repositories.NewBadgerBlogRepository(db)
	messageRepo := repositories.NewBadgerMessageRepository(db)
	settingsRepo := repositories.NewBadgerSettingsRepository(db)
	viewRepo := repositories.NewBadgerViewRepository(db)

	projects := services.NewProjectService(projectRepo)
	blog := services.NewBlogService(blogRepo)
	messages := services.NewMessageService(messageRepo, sender, services.Templates{
		Contact: cfg.Email.TemplateID,
		Reply:   cfg.Email.ReplyTemplateID,
	}, cfg.Site.Owner, logger)
	settings := services.NewSettingsService(settingsRepo, store, models.Settings{
		Name:              cfg.Site.Owner,
		Email:             cfg.Site.ContactEmail,
		AnimationsEnabled: true,
	}, cfg.Admin.Password)
	auth := services.NewAuthService(cfg.Admin.Username, settings)
	dashboard := services.NewDashboardService(projects, blog, messages, viewRepo)

	// Hash the initial password now rather than on the first request.
	if _, err := settings.GetSettings(); err != nil {
		return nil, err
	}

	sessions := session.NewManager(cfg.Session)
	base, err := controllers.NewBase(sessions, settings, cfg.Site, logger)
	if err != nil {
		return nil, err
	}
	public := controllers.NewPublicController(base, projects, blog, messages)
	api := controllers.NewAPIController(base, projects, blog, messages, dashboard)
	admin := controllers.NewAdminController(base, auth, projects, blog, messages, dashboard)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)
	router.Use(middleware.ViewCounter(viewRepo, logger))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static()))

	// Web routes
	router.HandleFunc("/", public.Home).Methods("GET")
	router.HandleFunc("/about", public.About).Methods("GET")
	router.HandleFunc("/projects", public.Projects).Methods("GET")
	router.HandleFunc("/projects/{id:[0-9]+}", public.Project).Methods("GET")
	router.HandleFunc("/blog", public.Blog).Methods("GET")
	router.HandleFunc("/blog/{slug}", public.Post).Methods("GET")
	router.HandleFunc("/contact", public.ContactForm).Methods("GET")
	router.HandleFunc("/contact", public.Contact).Methods("POST")
	router.HandleFunc("/theme", public.Theme).Methods("POST")

	// API routes with JSON content type
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.ContentTypeJSON)
	apiRouter.HandleFunc("/health", api.Health).Methods("GET")
	apiRouter.HandleFunc("/projects", api.Projects).Methods("GET")
	apiRouter.HandleFunc("/projects/{id:[0-9]+}", api.Project).Methods("GET")
	apiRouter.HandleFunc("/posts", api.Posts).Methods("GET")
	apiRouter.HandleFunc("/posts/{slug}", api.Post).Methods("GET")
	apiRouter.HandleFunc("/contact", api.Contact).Methods("POST")

	adminAPI := apiRouter.PathPrefix("/admin").Subrouter()
	adminAPI.Use(middleware.RequireAdmin(sessions))
	adminAPI.HandleFunc("/stats", api.Stats).Methods("GET")
	adminAPI.HandleFunc("/projects", api.AllProjects).Methods("GET")
	adminAPI.HandleFunc("/projects", api.CreateProject).Methods("POST")
	adminAPI.HandleFunc("/projects/{id:[0-9]+}", api.UpdateProject).Methods("PUT")
	adminAPI.HandleFunc("/projects/{id:[0-9]+}", api.DeleteProject).Methods("DELETE")
	adminAPI.HandleFunc("/posts", api.AllPosts).Methods("GET")
	adminAPI.HandleFunc("/posts", api.CreatePost).Methods("POST")
	adminAPI.HandleFunc("/posts/{id:[0-9]+}", api.UpdatePost).Methods("PUT")
	adminAPI.HandleFunc("/posts/{id:[0-9]+}", api.DeletePost).Methods("DELETE")
	adminAPI.HandleFunc("/messages", api.Messages).Methods("GET")
	adminAPI.HandleFunc("/messages/{id:[0-9]+}", api.Message).Methods("GET")
	adminAPI.HandleFunc("/messages/{id:[0-9]+}", api.DeleteMessage).Methods("DELETE")
	adminAPI.HandleFunc("/messages/{id:[0-9]+}/reply", api.ReplyMessage).Methods("POST")

	// Admin panel
	router.HandleFunc("/admin/login", admin.LoginForm).Methods("GET")
	router.HandleFunc("/admin/login", admin.Login).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin(sessions))
	toDashboard := http.RedirectHandler("/admin/dashboard", http.StatusFound)
	adminRouter.Handle("", toDashboard).Methods("GET")
	adminRouter.Handle("/", toDashboard).Methods("GET")
	adminRouter.HandleFunc("/dashboard", admin.Dashboard).Methods("GET")
	adminRouter.HandleFunc("/logout", admin.Logout).Methods("POST")
	adminRouter.HandleFunc("/sidebar", admin.ToggleSidebar).Methods("POST")

	adminRouter.HandleFunc("/projects", admin.Projects).Methods("GET")
	adminRouter.HandleFunc("/projects", admin.CreateProject).Methods("POST")
	adminRouter.HandleFunc("/projects/new", admin.NewProject).Methods("GET")
	adminRouter.HandleFunc("/projects/{id:[0-9]+}/edit", admin.EditProject).Methods("GET")
	adminRouter.HandleFunc("/projects/{id:[0-9]+}", admin.UpdateProject).Methods("POST")
	adminRouter.HandleFunc("/projects/{id:[0-9]+}/delete", admin.DeleteProject).Methods("POST")

	adminRouter.HandleFunc("/blog", admin.Posts).Methods("GET")
	adminRouter.HandleFunc("/blog", admin.CreatePost).Methods("POST")
	adminRouter.HandleFunc("/blog/new", admin.NewPost).Methods("GET")
	adminRouter.HandleFunc("/blog/{id:[0-9]+}/edit", admin.EditPost).Methods("GET")
	adminRouter.HandleFunc("/blog/{id:[0-9]+}", admin.UpdatePost).Methods("POST")
	adminRouter.HandleFunc("/blog/{id:[0-9]+}/delete", admin.DeletePost).Methods("POST")

	adminRouter.HandleFunc("/messages", admin.Messages).Methods("GET")
	adminRouter.HandleFunc("/messages/{id:[0-9]+}", admin.Message).Methods("GET")
	adminRouter.HandleFunc("/messages/{id:[0-9]+}/reply", admin.ReplyMessage).Methods("POST")
	adminRouter.HandleFunc("/messages/{id:[0-9]+}/delete", admin.DeleteMessage).Methods("POST")

	adminRouter.HandleFunc("/settings", admin.Settings).Methods("GET")
	adminRouter.HandleFunc("/settings/profile", admin.UpdateProfile).Methods("POST")
	adminRouter.HandleFunc("/settings/password", admin.ChangePassword).Methods("POST")
	adminRouter.HandleFunc("/settings/dark-mode", admin.ToggleDarkMode).Methods("POST")
	adminRouter.HandleFunc("/settings/animations", admin.ToggleAnimations).Methods("POST")
	adminRouter.HandleFunc("/settings/backup", admin.Backup).Methods("GET")
	adminRouter.HandleFunc("/settings/restore", admin.Restore).Methods("POST")

	// Apply global middleware
	var handler http.Handler = router
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	return handler, nil
}

// StartServer serves handler on addr until ctx is cancelled, then shuts
// down gracefully within timeout.
func StartServer(ctx context.Context, addr string, handler http.Handler, timeout time.Duration, logger *zap.Logger) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
