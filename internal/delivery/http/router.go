package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yael201062/rest-api2/internal/delivery/http/controllers"
	authcontroller "github.com/yael201062/rest-api2/internal/delivery/http/controllers/auth"
	commentcontroller "github.com/yael201062/rest-api2/internal/delivery/http/controllers/comment"
	"github.com/yael201062/rest-api2/internal/delivery/http/controllers/middleware"
	postcontroller "github.com/yael201062/rest-api2/internal/delivery/http/controllers/post"
	"github.com/yael201062/rest-api2/internal/service"
	"github.com/yael201062/rest-api2/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))
	r.Use(middleware.LoggingMiddleware(l))

	statusController := controllers.NewStatusHandler()
	authController := authcontroller.NewAuthHandler(l, u.AuthService)
	postController := postcontroller.NewPostHandler(l, u.PostService)
	commentController := commentcontroller.NewCommentHandler(l, u.CommentService)
	authRequired := middleware.NewAuthMiddlewareProvider(l, u.AuthService).AuthMiddleware

	r.GET("/status", statusController.Status)
	r.GET("/me", authRequired, authController.Me)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.GET("/:id", postController.PostByID)
		posts.POST("", authRequired, postController.CreatePost)
		posts.PUT("/:id", authRequired, postController.UpdatePost)
		posts.DELETE("/:id", authRequired, postController.DeletePost)
	}

	comments := r.Group("/comments")
	{
		comments.GET("", commentController.ListComments)
		comments.GET("/:id", commentController.CommentByID)
		comments.POST("", authRequired, commentController.CreateComment)
		comments.DELETE("/:id", authRequired, commentController.DeleteComment)
	}

	return r
}
