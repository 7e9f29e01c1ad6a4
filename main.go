// File: cursos/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cursos/config"
	"cursos/handlers"
	"cursos/middleware"
	"cursos/routes"
	"cursos/services/admin"
	"cursos/services/auth"
	"cursos/services/backend"
	"cursos/services/catalog"
	"cursos/services/content"
	"cursos/services/flash"
	"cursos/services/inflight"
	"cursos/services/profile"
	"cursos/services/session"
	"cursos/services/teacher"
	"cursos/telemetry"
	"cursos/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	shutdownTracing := telemetry.Setup("cursos-web")

	store := utils.NewStore()
	api := backend.NewClient(cfg.APIBaseURL, cfg.AuthBasePath, cfg.BackendTimeout)

	// Session cookie and flash toasts.
	codec, err := session.NewCodec(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionMaxAge)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build session codec: %v", err)
	}
	sessions := session.NewProvider(codec, session.Options{
		CookieName: cfg.SessionCookie,
		MaxAge:     cfg.SessionMaxAge,
		Secure:     config.IsProduction(),
	})
	flashHash, err := session.DeriveKey(cfg.SessionSecret, "flash-hash", 64)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to derive flash key: %v", err)
	}
	flashBlock, err := session.DeriveKey(cfg.SessionSecret, "flash-block", 32)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to derive flash key: %v", err)
	}
	responder := handlers.Responder{Flash: flash.NewStore(config.IsProduction(), flashHash, flashBlock)}

	// services.
	catalogService := &catalog.DefaultCatalogService{
		API:      api,
		Store:    store,
		CacheTTL: cfg.CatalogCacheTTL,
		BaseURL:  api.BaseURL(),
	}
	authService := &auth.DefaultAuthService{
		API:           api,
		RedirectDelay: cfg.RegisterRedirectDelay,
	}
	adminService := &admin.DefaultAdminService{API: api}
	teacherService := &teacher.DefaultTeacherService{
		API:     api,
		Catalog: catalogService,
		BaseURL: api.BaseURL(),
	}
	editorService := &content.DefaultEditorService{
		API:   api,
		Store: store,
		TTL:   cfg.DraftTTL,
	}
	profileService := &profile.DefaultProfileService{API: api}

	sessions.Subscribe(session.LogEvents(logger))
	sessions.Subscribe(editorService.DropUserDrafts)

	authHandler := handlers.NewAuthHandler(responder, authService, sessions)
	catalogHandler := handlers.NewCatalogHandler(responder, catalogService, sessions)
	adminHandler := handlers.NewAdminHandler(responder, adminService, sessions)
	teacherHandler := handlers.NewTeacherHandler(responder, teacherService, sessions)
	contentHandler := handlers.NewContentHandler(responder, editorService, sessions)
	profileHandler := handlers.NewProfileHandler(responder, profileService, sessions)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,
		InFlight: inflight.NewGuard(),

		// Auth endpoints.
		LoginPageHandler:       authHandler.LoginPageHandler,
		LoginHandler:           authHandler.LoginHandler,
		LogoutHandler:          authHandler.LogoutHandler,
		RegisterPageHandler:    authHandler.RegisterPageHandler,
		RegisterHandler:        authHandler.RegisterHandler,
		RegisterTeacherHandler: authHandler.RegisterTeacherHandler,
		RequestResetHandler:    authHandler.RequestResetHandler,
		ResetPageHandler:       authHandler.ResetPageHandler,
		ResetPasswordHandler:   authHandler.ResetPasswordHandler,

		// Catalog and student endpoints.
		CatalogHandler:   catalogHandler.CatalogHandler,
		PreviewHandler:   catalogHandler.PreviewHandler,
		EnrollHandler:    catalogHandler.EnrollHandler,
		UnenrollHandler:  catalogHandler.UnenrollHandler,
		MyCoursesHandler: catalogHandler.MyCoursesHandler,
		ViewerHandler:    catalogHandler.ViewerHandler,

		// Admin endpoints.
		GetUsersHandler:       adminHandler.GetUsersHandler,
		UpdateUserHandler:     adminHandler.UpdateUserHandler,
		ToggleUserHandler:     adminHandler.ToggleUserHandler,
		GetCategoriesHandler:  adminHandler.GetCategoriesHandler,
		SaveCategoryHandler:   adminHandler.SaveCategoryHandler,
		ToggleCategoryHandler: adminHandler.ToggleCategoryHandler,
		GetLogsHandler:        adminHandler.GetLogsHandler,

		// Teacher endpoints.
		GetCoursesHandler:           teacherHandler.GetCoursesHandler,
		GetCourseHandler:            teacherHandler.GetCourseHandler,
		GetTeacherCategoriesHandler: teacherHandler.GetCategoriesHandler,
		SaveCourseHandler:           teacherHandler.SaveCourseHandler,
		ToggleCourseHandler:         teacherHandler.ToggleCourseHandler,
		GetStudentsHandler:          teacherHandler.GetStudentsHandler,

		// Content editor endpoints.
		GetDraftHandler:     contentHandler.GetDraftHandler,
		SaveContentHandler:  contentHandler.SaveHandler,
		DiscardDraftHandler: contentHandler.DiscardHandler,
		AddModuleHandler:    contentHandler.AddModuleHandler,
		RenameModuleHandler: contentHandler.RenameModuleHandler,
		DeleteModuleHandler: contentHandler.DeleteModuleHandler,
		MoveModuleHandler:   contentHandler.MoveModuleHandler,
		AddLessonHandler:    contentHandler.AddLessonHandler,
		EditLessonHandler:   contentHandler.EditLessonHandler,
		DeleteLessonHandler: contentHandler.DeleteLessonHandler,

		// Profile endpoints.
		GetProfileHandler:     profileHandler.GetProfileHandler,
		UpdateProfileHandler:  profileHandler.UpdateProfileHandler,
		ChangePasswordHandler: profileHandler.ChangePasswordHandler,

		NavHandler:    handlers.NavHandler(sessions),
		HealthHandler: handlers.HealthHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle)

	var handler http.Handler = router
	if cfg.CSRFEnabled {
		csrfKey, err := session.DeriveKey(cfg.SessionSecret, "csrf", 32)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to derive csrf key: %v", err)
		}
		handler = middleware.CSRF(csrfKey, config.IsProduction(), config.Origins())(handler)
	}
	handler = otelhttp.NewHandler(handler, "cursos-web")

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, api.HTTPClient(), api.BaseURL(), store)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: handler,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("main: tracing shutdown failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
