package router

import (
	"time"

	"Postbook/internal/handler"
	"Postbook/internal/middleware"
	"Postbook/internal/repository/mysql"
	"Postbook/internal/repository/redis"
	"Postbook/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitRouter wires repositories into services into handlers and lays out
// the route table.
func InitRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	userRepo := &mysql.UserRepository{DB: mysql.DB}
	postRepo := &mysql.PostRepository{DB: mysql.DB}
	voteRepo := &mysql.VoteRepository{DB: mysql.DB}
	outboxRepo := &mysql.OutboxRepository{DB: mysql.DB}
	sessionRepo := &redis.TokenRepository{}
	countCache := redis.NewVoteCountRepository()
	countLock := &redis.DistLock{}

	userSvc := service.NewUserService(userRepo, sessionRepo)
	postSvc := service.NewPostService(postRepo, userRepo, voteRepo, countCache, countLock, outboxRepo)
	voteSvc := service.NewVoteService(postRepo, voteRepo, countCache, countLock, outboxRepo)

	user := handler.NewUserHandler(userSvc)
	post := handler.NewPostHandler(postSvc, voteSvc)

	auth := middleware.Auth(sessionRepo)

	userGroup := r.Group("/users")
	{
		userGroup.POST("/signup", user.Signup)
		userGroup.POST("/login", user.Login)
		userGroup.GET("", auth, user.List)
		userGroup.GET("/:id", auth, user.GetByID)
	}

	postGroup := r.Group("/posts")
	postGroup.Use(auth)
	{
		postGroup.GET("", post.List)
		postGroup.GET("/:id", post.GetByID)
		postGroup.POST("", post.Create)
		postGroup.PUT("/:id", post.Edit)
		postGroup.PUT("/:id/like", post.Vote)
		postGroup.DELETE("/:id", post.Delete)
	}

	return r
}
