package routes

import (
	"net/http"
	"time"

	"cursos/config"
	"cursos/handlers"
	"cursos/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign in, registration and password reset. The form
// submissions are rate limited per client IP.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	limit := middleware.RateLimitMiddleware(config.AppConfig.AuthRequestsPerMin)

	anon := r.Group("")
	{
		anon.Use(middleware.Gate(hb.Sessions, middleware.AnonymousOnly))
		anon.GET("/login", hb.LoginPageHandler)
		anon.POST("/login", limit, hb.LoginHandler)
		anon.GET("/register", hb.RegisterPageHandler)
		anon.POST("/register", limit, hb.RegisterHandler)
		anon.POST("/password/request-reset", limit, hb.RequestResetHandler)
		anon.GET("/password/reset", hb.ResetPageHandler)
		anon.POST("/password/reset", limit, hb.ResetPasswordHandler)
	}

	private := r.Group("")
	{
		private.Use(middleware.Gate(hb.Sessions, middleware.Private))
		private.GET("/logout", hb.LogoutHandler)
		private.POST("/logout", hb.LogoutHandler)
		private.GET("/profile", hb.GetProfileHandler)
		private.PUT("/profile", hb.UpdateProfileHandler)
		private.PUT("/profile/password", hb.ChangePasswordHandler)
	}
}

// RegisterCatalogRoutes registers the public catalog and the student's pages.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	public := r.Group("")
	{
		public.Use(middleware.Gate(hb.Sessions, middleware.Public))
		public.GET("/courses", hb.CatalogHandler)
		public.GET("/course/:id/preview", hb.PreviewHandler)
		// Anonymous visitors and other roles are redirected to login by the handler.
		public.POST("/courses/:id/enroll", hb.EnrollHandler)
		public.GET("/nav", hb.NavHandler)
	}

	student := r.Group("/student")
	{
		student.Use(middleware.Gate(hb.Sessions, middleware.StudentOnly))
		student.GET("/my-courses", hb.MyCoursesHandler)
		student.GET("/course/:id/view", hb.ViewerHandler)
		student.POST("/course/:id/unenroll", hb.UnenrollHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(middleware.Gate(hb.Sessions, middleware.AdminOnly))
		adminGroup.GET("/users", hb.GetUsersHandler)
		adminGroup.PUT("/users/:id", hb.UpdateUserHandler)
		adminGroup.DELETE("/users/:id", hb.ToggleUserHandler)
		adminGroup.GET("/categories", hb.GetCategoriesHandler)
		adminGroup.POST("/categories", hb.SaveCategoryHandler)
		adminGroup.PUT("/categories/:id", hb.SaveCategoryHandler)
		adminGroup.DELETE("/categories/:id", hb.ToggleCategoryHandler)
		adminGroup.GET("/logs", hb.GetLogsHandler)
	}
	r.POST("/registerteacher", middleware.Gate(hb.Sessions, middleware.AdminOnly), hb.RegisterTeacherHandler)
}

// RegisterTeacherRoutes sets up course management and the content editor.
func RegisterTeacherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	teacher := r.Group("/teacher")
	{
		teacher.Use(middleware.Gate(hb.Sessions, middleware.TeacherOnly))
		teacher.GET("/courses", hb.GetCoursesHandler)
		teacher.POST("/courses", hb.SaveCourseHandler)
		teacher.GET("/courses/:id", hb.GetCourseHandler)
		teacher.PUT("/courses/:id", hb.SaveCourseHandler)
		teacher.DELETE("/courses/:id", hb.ToggleCourseHandler)
		teacher.GET("/categories", hb.GetTeacherCategoriesHandler)
		teacher.GET("/course/:id/students", hb.GetStudentsHandler)

		content := teacher.Group("/course/:id/content")
		content.GET("", hb.GetDraftHandler)
		content.POST("", hb.SaveContentHandler)
		content.DELETE("", hb.DiscardDraftHandler)
		content.POST("/modules", hb.AddModuleHandler)
		content.PUT("/modules/:moduleID", hb.RenameModuleHandler)
		content.DELETE("/modules/:moduleID", hb.DeleteModuleHandler)
		content.POST("/modules/:moduleID/move", hb.MoveModuleHandler)
		content.POST("/modules/:moduleID/lessons", hb.AddLessonHandler)
		content.PUT("/modules/:moduleID/lessons/:lessonID", hb.EditLessonHandler)
		content.DELETE("/modules/:moduleID/lessons/:lessonID", hb.DeleteLessonHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.Origins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-CSRF-Token"},
		AllowCredentials: len(origins) > 0,
		AllowAllOrigins:  len(origins) == 0,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SessionLoader(hb.Sessions))
	if config.AppConfig.CSRFEnabled {
		r.Use(middleware.CSRFToken())
	}
	if hb.InFlight != nil {
		r.Use(middleware.InFlight(hb.InFlight, hb.Sessions))
	}

	r.GET("/", middleware.Home(hb.Sessions, hb.CatalogHandler))
	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterTeacherRoutes(r, hb)
	RegisterHealthRoute(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/")
	})
}
