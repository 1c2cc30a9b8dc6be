package server

import (
	"time"

	"vidstream/domain/repository"
	httpHandler "vidstream/interfaces/http"
	"vidstream/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	videoHandler httpHandler.IVideoHandler,
	historyHandler httpHandler.IHistoryHandler,
	userRepository repository.IUser,
	secretKey string,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.Auth(userRepository, secretKey)
	adminRequired := middleware.Admin()

	auth := router.Group("auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
		auth.GET("/logout", userHandler.Logout)

		auth.POST("/subscribe/:id", authRequired, userHandler.Subscribe)
		auth.POST("/unsubscribe/:id", authRequired, userHandler.Unsubscribe)
		auth.GET("/subscriptions/videos", authRequired, userHandler.SubscriptionVideos)

		auth.GET("/by-channel/:channelName", userHandler.GetByChannelName)

		auth.PUT("/block/:id", authRequired, adminRequired, userHandler.BlockUser)
		auth.PUT("/unblock/:id", authRequired, adminRequired, userHandler.UnblockUser)
		auth.PUT("/change-role/:id", authRequired, adminRequired, userHandler.ChangeRole)
		auth.GET("/all-users", authRequired, adminRequired, userHandler.GetAllUsers)
	}

	api := router.Group("api")
	{
		api.POST("/upload", authRequired, videoHandler.Upload)
		api.GET("/getAllVideos", videoHandler.GetAllVideos)
		api.GET("/getAllVideos/:id", videoHandler.GetVideoByID)
		api.GET("/:id/getAllVideosById", videoHandler.GetVideosByUser)
		api.PUT("/like/:id", videoHandler.Like)
		api.PUT("/dislike/:id", videoHandler.Dislike)
		api.PUT("/views/:id", videoHandler.View)
		api.PUT("/video/:id", authRequired, videoHandler.UpdateVideo)

		api.GET("/comments/:id", videoHandler.GetComments)
		api.POST("/comment/:id", authRequired, videoHandler.AddComment)
		api.PUT("/comment/:id/:commentId", authRequired, videoHandler.UpdateComment)
		api.DELETE("/comment/:id/:commentId", authRequired, videoHandler.DeleteComment)
	}

	history := router.Group("history")
	{
		// Public metadata passthrough sits outside the auth gate.
		history.GET("/youtube/metadata/:videoId", historyHandler.GetYouTubeMetadata)

		history.POST("", authRequired, historyHandler.Save)
		history.GET("", authRequired, historyHandler.List)
		history.GET("/video/:videoId", authRequired, historyHandler.GetItem)
		history.DELETE("", authRequired, historyHandler.Clear)
		history.DELETE("/:videoId", authRequired, historyHandler.DeleteItem)
	}

	return router
}
