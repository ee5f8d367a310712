package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"artshare/internal/repo"
	"artshare/internal/service"
	"artshare/internal/storage"
	"artshare/internal/transport/http/handler"
	mdw "artshare/internal/transport/http/middleware"
)

type Deps struct {
	Log   *zap.Logger
	DB    *gorm.DB
	Store *storage.Local
}

// New assembles the engine: middleware chain, operational endpoints, static
// uploads, and the three resource surfaces.
func New(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(200), 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(storage.BasePath, d.Store.Dir())

	userRepo := repo.NewUserRepo(d.DB)
	postRepo := repo.NewPostRepo(d.DB)
	commentRepo := repo.NewCommentRepo(d.DB)

	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo, userRepo)
	commentSvc := service.NewCommentService(commentRepo, postRepo)

	authH := handler.NewAuthHandler(userSvc, d.Log)
	postH := handler.NewPostHandler(postSvc, d.Store, d.Log)
	commentH := handler.NewCommentHandler(commentSvc, d.Log)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.PUT("/users/:id", authH.UpdateProfile)
		auth.GET("/users/:id", authH.GetUser)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postH.List)
		posts.POST("", postH.Create)
		posts.GET("/:id", postH.Get)
		posts.DELETE("/:id", postH.Delete)
	}

	comments := r.Group("/comments")
	{
		comments.GET("/post/:workId", commentH.ListForPost)
		comments.POST("", commentH.Create)
		comments.DELETE("/:id", commentH.Delete)
	}

	return r
}
