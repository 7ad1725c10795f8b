package app

import (
	"exam_prep_backend/docs"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerLearnerRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/categories", c.question.Categories)
		public.GET("/categories/:category/subcategories", c.question.Subcategories)
		public.GET("/badges", c.badge.Catalog)

		// Browsable without an account; admins additionally see drafts.
		public.GET("/tests", middleware.TryAuthMiddleware(a.Config), c.test.List)
		public.GET("/tests/:id", middleware.TryAuthMiddleware(a.Config), c.test.Get)
	}
}

func (a *App) registerLearnerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		authGroup.GET("/users/me", c.user.Profile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.GET("/users/me/dashboard", c.user.Dashboard)

		authGroup.POST("/practice/sessions", c.practice.Start)
		authGroup.GET("/practice/sessions/:id", c.practice.State)
		authGroup.POST("/practice/sessions/:id/answer", c.practice.Answer)
		authGroup.POST("/practice/sessions/:id/goto", c.practice.Goto)
		authGroup.POST("/practice/sessions/:id/review", c.practice.ToggleReview)
		authGroup.POST("/practice/sessions/:id/submit", c.practice.Submit)

		authGroup.POST("/tests/:id/start", c.test.Start)
		authGroup.GET("/attempts", c.test.History)
		authGroup.GET("/attempts/:id", c.test.Attempt)

		authGroup.GET("/current-affairs", c.question.DailyCurrentAffairs)
		authGroup.GET("/news", c.news.Daily)

		authGroup.GET("/leaderboard", c.leaderboard.Top)
		authGroup.GET("/leaderboard/me", c.leaderboard.MyRank)

		authGroup.GET("/badges/mine", c.badge.Mine)

		authGroup.GET("/bookmarks", c.bookmark.List)
		authGroup.POST("/bookmarks/:questionId", c.bookmark.Toggle)

		authGroup.POST("/chat", c.chat.Send)
		authGroup.GET("/chat/sessions", c.chat.Sessions)
		authGroup.GET("/chat/sessions/:id", c.chat.Messages)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/questions", c.question.List)
		admin.POST("/questions", c.question.Create)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/ingest/file", c.ingest.UploadFile)
		admin.POST("/ingest/text", c.ingest.UploadText)
		admin.GET("/ingest/jobs", c.ingest.ListJobs)

		admin.POST("/tests", c.test.Create)
		admin.POST("/tests/:id/publish", c.test.Publish)
		admin.DELETE("/tests/:id", c.test.Delete)

		admin.POST("/ai/generate-test", c.chat.GenerateTest)
	}
}
