package app

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes, a guest session is minted when no JWT is present.
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(), middleware.GuestSessionMiddleware())
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/categories", c.category.List)
		public.GET("/categories/:id", c.category.Get)

		public.GET("/quizzes", c.quiz.ListPublic)
		public.GET("/quizzes/by-category/:name", c.quiz.ListByCategory)
		public.GET("/quizzes/access/:key", c.quiz.ConnectByCode)
		public.GET("/quizzes/:id", c.quiz.Get)
		public.GET("/quizzes/:id/questions", c.question.ListForQuiz)
		public.GET("/quizzes/:id/attempts", c.attempt.ListForQuiz)
		public.GET("/quizzes/:id/leaderboard", c.attempt.Leaderboard)
		public.POST("/quizzes/:id/start", c.attempt.Start)

		public.GET("/attempts/:id", c.attempt.Get)
		public.GET("/attempts/:id/answers", c.attempt.ListAnswers)
		public.POST("/attempts/:id/stop", c.attempt.Finish)
	}

	// Routes that require a logged-in user.
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.GET("/profile", c.user.GetProfile)
		authorized.GET("/user/profile", c.user.GetProfile)
		authorized.PUT("/user/profile", c.user.UpdateProfile)
		authorized.POST("/user/avatar/upload", c.user.UploadAvatar)
		authorized.GET("/user/attempts", c.user.ListAttempts)

		authorized.POST("/categories", c.category.Create)
		authorized.PUT("/categories/:id", c.category.Update)

		authorized.GET("/quizzes/mine", c.quiz.ListMine)
		authorized.POST("/quizzes", c.quiz.Create)
		authorized.PUT("/quizzes/:id", c.quiz.Update)
		authorized.DELETE("/quizzes/:id", c.quiz.Delete)

		authorized.POST("/questions", c.question.Create)
		authorized.PUT("/questions/:id", c.question.Update)
		authorized.DELETE("/questions/:id", c.question.Delete)
	}
}
