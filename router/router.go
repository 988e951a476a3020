// Package router wires handlers and middleware into the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave-backend/config"
	"github.com/tripweave/tripweave-backend/handlers"
	"github.com/tripweave/tripweave-backend/middleware"
)

// Dependencies holds everything needed to set up routes.
type Dependencies struct {
	Config            *config.Config
	TripHandler       *handlers.TripHandler
	InvitationHandler *handlers.InvitationHandler
	ExpenseHandler    *handlers.ExpenseHandler
	PollHandler       *handlers.PollHandler
	TaskHandler       *handlers.TaskHandler
	MessageHandler    *handlers.MessageHandler
	ActivityHandler   *handlers.ActivityHandler
	HealthHandler     *handlers.HealthHandler
	WSHandler         *handlers.WSHandler
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))

	// Health and metrics stay outside auth.
	r.GET("/health", deps.HealthHandler.Readiness)
	r.GET("/health/liveness", deps.HealthHandler.Liveness)
	r.GET("/health/readiness", deps.HealthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	authRoutes := v1.Group("")
	authRoutes.Use(middleware.AuthMiddleware(&deps.Config.Server))
	{
		tripRoutes := authRoutes.Group("/trips")
		{
			tripRoutes.POST("", deps.TripHandler.CreateTrip)
			tripRoutes.GET("", deps.TripHandler.ListTrips)
			tripRoutes.GET("/:id", deps.TripHandler.GetTrip)
			tripRoutes.GET("/:id/snapshot", deps.TripHandler.GetTripSnapshot)
			tripRoutes.PATCH("/:id/status", deps.TripHandler.UpdateTripStatus)

			tripRoutes.GET("/:id/ws", deps.WSHandler.StreamTripEvents)

			tripRoutes.GET("/:id/participants", deps.InvitationHandler.ListParticipants)
			tripRoutes.POST("/:id/invitations", deps.InvitationHandler.InviteParticipant)
			tripRoutes.POST("/:id/invitations/respond", deps.InvitationHandler.RespondToInvitation)

			expenseRoutes := tripRoutes.Group("/:id/expenses")
			{
				expenseRoutes.POST("", deps.ExpenseHandler.CreateExpense)
				expenseRoutes.GET("", deps.ExpenseHandler.ListExpenses)
				expenseRoutes.GET("/:expenseId", deps.ExpenseHandler.GetExpense)
				expenseRoutes.POST("/:expenseId/settle", deps.ExpenseHandler.SettleShare)
				expenseRoutes.GET("/:expenseId/progress", deps.ExpenseHandler.SettlementProgress)
			}

			pollRoutes := tripRoutes.Group("/:id/polls")
			{
				pollRoutes.POST("", deps.PollHandler.CreatePoll)
				pollRoutes.GET("", deps.PollHandler.ListPolls)
				pollRoutes.GET("/:pollId", deps.PollHandler.GetPoll)
				pollRoutes.POST("/:pollId/vote", deps.PollHandler.CastVote)
			}

			taskRoutes := tripRoutes.Group("/:id/tasks")
			{
				taskRoutes.POST("", deps.TaskHandler.CreateTask)
				taskRoutes.GET("", deps.TaskHandler.ListTasks)
				taskRoutes.PATCH("/:taskId/status", deps.TaskHandler.UpdateTaskStatus)
			}

			messageRoutes := tripRoutes.Group("/:id/messages")
			{
				messageRoutes.POST("", deps.MessageHandler.SendMessage)
				messageRoutes.GET("", deps.MessageHandler.ListMessages)
			}

			activityRoutes := tripRoutes.Group("/:id/activities")
			{
				activityRoutes.POST("", deps.ActivityHandler.CreateActivity)
				activityRoutes.GET("", deps.ActivityHandler.ListActivities)
			}
		}
	}

	return r
}
