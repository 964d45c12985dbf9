package app

import (
	"aba_assessment_backend/docs"
	"aba_assessment_backend/internal/config"
	"aba_assessment_backend/internal/middleware"
	"aba_assessment_backend/internal/model"
	"aba_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		children := authGroup.Group("/children")
		{
			children.POST("", c.child.Create)
			children.GET("", c.child.List)
			children.GET("/:id", c.child.Get)
			children.PUT("/:id", c.child.Update)
			children.DELETE("/:id", c.child.Delete)
		}

		questionnaires := authGroup.Group("/questionnaires")
		{
			questionnaires.GET("/templates", c.questionnaire.ListTemplates)
			questionnaires.GET("/templates/:assessmentType", c.questionnaire.GetTemplate)

			questionnaires.POST("/sessions", c.questionnaire.StartSession)
			questionnaires.GET("/sessions", c.questionnaire.ListSessions)
			questionnaires.GET("/sessions/:sessionId", c.questionnaire.GetSession)
			questionnaires.PUT("/sessions/:sessionId/responses", c.questionnaire.SaveResponse)
			questionnaires.PATCH("/sessions/:sessionId/complete", c.questionnaire.CompleteSession)

			// Scoring and reports are clinician-facing.
			clinical := questionnaires.Group("")
			clinical.Use(middleware.RoleMiddleware(model.Clinician))
			{
				clinical.GET("/sessions/:sessionId/scoring", c.scoring.GetScoring)
				clinical.GET("/sessions/:sessionId/scoring/vb-export", c.scoring.GetVBExport)
				clinical.GET("/sessions/:sessionId/report", c.scoring.DownloadReport)
			}
		}

		dashboard := authGroup.Group("/dashboard")
		dashboard.Use(middleware.RoleMiddleware(model.Clinician))
		{
			dashboard.GET("/overview", c.dashboard.Overview)
		}

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.user.List)
			admin.PATCH("/users/:id/role", c.user.UpdateRole)
			admin.PATCH("/users/:id/disabled", c.user.SetDisabled)
			admin.DELETE("/users/:id", c.user.Delete)
		}
	}
}
