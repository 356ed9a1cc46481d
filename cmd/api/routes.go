package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	// CORS Middleware
	origins := strings.Join(app.Config.GetCORSOrigins(), ", ")
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", app.Handler.Register)
		v1.POST("/auth/login", app.Handler.Login)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/auth/me", app.Handler.Me)
		protected.POST("/auth/logout", app.Handler.Logout)
		protected.POST("/auth/password", app.RequireRole(model.RoleCandidate), app.Handler.ChangePassword)

		// admin user management
		admin := protected.Group("/admin", app.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", app.Handler.ListUsers)
			admin.POST("/users", app.Handler.CreateUser)
			admin.PATCH("/users/:id", app.Handler.PatchUser)
			admin.DELETE("/users/:id", app.Handler.DeleteUser)
		}

		// interview lifecycle
		protected.GET("/interviews", app.Handler.ListInterviews)
		protected.GET("/interviews/:id", app.Handler.GetInterview)

		recruiter := app.RequireRole(model.RoleRecruiter)
		protected.POST("/interviews", recruiter, app.Handler.CreateInterview)
		protected.PATCH("/interviews/:id", recruiter, app.Handler.PatchInterview)
		protected.PUT("/interviews/:id/questions", recruiter, app.Handler.ReplaceQuestions)
		protected.DELETE("/interviews/:id", recruiter, app.Handler.DeleteInterview)
		protected.POST("/interviews/:id/candidates", recruiter, app.Handler.AssignCandidates)
		protected.DELETE("/interviews/:id/candidates/:cid", recruiter, app.Handler.UnassignCandidate)
		protected.GET("/interviews/:id/results", recruiter, app.Handler.GetResults)

		// candidate submission
		protected.POST("/interviews/:id/responses", app.RequireRole(model.RoleCandidate), app.Handler.SubmitResponse)

		// notifications
		protected.GET("/notifications", app.Handler.ListNotifications)
		protected.GET("/notifications/:id", app.Handler.GetNotification)
		protected.POST("/notifications/:id/read", app.Handler.MarkNotificationRead)
		protected.DELETE("/notifications/:id", app.Handler.DeleteNotification)
	}

	return r
}
