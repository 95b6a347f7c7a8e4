package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/middleware"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		authGroup.POST("/logout", Logout)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
	}

	// Everything below requires authentication
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware())

	projectGroup := authed.Group("/projects")
	{
		projectGroup.GET("", ListProjects)
		projectGroup.POST("", CreateProject)
		projectGroup.GET("/:id", GetProject)
		projectGroup.PUT("/:id", UpdateProject)
		projectGroup.PUT("/:id/status", SetProjectStatus)
		projectGroup.GET("/:id/stats", GetProjectStats)
		projectGroup.GET("/:id/activity", ListProjectActivity)

		projectGroup.GET("/:id/members", ListMembers)
		projectGroup.POST("/:id/members", AddMember)
		projectGroup.PUT("/:id/members/:memberId", UpdateMemberRole)
		projectGroup.DELETE("/:id/members/:memberId", RemoveMember)

		projectGroup.GET("/:id/epics", ListEpics)
		projectGroup.POST("/:id/epics", CreateEpic)

		projectGroup.GET("/:id/bugs", ListBugs)
		projectGroup.POST("/:id/bugs", CreateBug)

		projectGroup.GET("/:id/generations", ListGenerationLogs)
		projectGroup.POST("/:id/generations", RecordGeneration)
		projectGroup.GET("/:id/scraped-pages", ListScrapedPages)
		projectGroup.POST("/:id/scraped-pages", RecordScrapedPage)
	}

	epicGroup := authed.Group("/epics")
	{
		epicGroup.GET("/:id", GetEpic)
		epicGroup.PUT("/:id", UpdateEpic)
		epicGroup.PUT("/:id/status", TransitionEpic)
		epicGroup.GET("/:id/stories", ListStories)
		epicGroup.POST("/:id/stories", CreateStory)
	}

	storyGroup := authed.Group("/stories")
	{
		storyGroup.GET("/:id", GetStory)
		storyGroup.PUT("/:id", UpdateStory)
		storyGroup.PUT("/:id/status", TransitionStory)
		storyGroup.GET("/:id/test-cases", ListTestCases)
		storyGroup.POST("/:id/test-cases", CreateTestCase)
	}

	testCaseGroup := authed.Group("/test-cases")
	{
		testCaseGroup.GET("/:id", GetTestCase)
		testCaseGroup.PUT("/:id", UpdateTestCase)
		testCaseGroup.PUT("/:id/status", TransitionTestCase)
		testCaseGroup.GET("/:id/scripts", ListScripts)
		testCaseGroup.POST("/:id/scripts", CreateScript)
		testCaseGroup.GET("/:id/executions", ListExecutions)
		testCaseGroup.POST("/:id/executions", RecordExecution)
	}

	scriptGroup := authed.Group("/scripts")
	{
		scriptGroup.GET("/:id", GetScript)
		scriptGroup.PUT("/:id", UpdateScript)
	}

	executionGroup := authed.Group("/executions")
	{
		executionGroup.GET("/:id", GetExecution)
	}

	bugGroup := authed.Group("/bugs")
	{
		bugGroup.GET("/:id", GetBug)
		bugGroup.PUT("/:id", UpdateBug)
		bugGroup.PUT("/:id/status", TransitionBug)
	}

	authed.GET("/stats/dashboard", GetDashboardStats)

	// Admin endpoints - platform-level admin role required
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/users", ListUsers)
	}
}
