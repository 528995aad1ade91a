package route

import (
	"time"

	"cafeapi/config"
	"cafeapi/controller"
	"cafeapi/utils"
	"cafeapi/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the middleware chain and every route mounted.
func NewRouter(
	conf *config.Config,
	log *zap.Logger,
	metrics *utils.HTTPMetrics,
	cafes *controller.CafeController,
	health *controller.HealthController,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestid.New(), utils.RequestLogger(log))
	if conf.Metrics.Enabled {
		router.Use(metrics.Middleware())
	}

	corsConfig := cors.Config{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(web.MustTemplates())

	if conf.Metrics.Enabled {
		router.GET(conf.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	CafeRoutes(router, cafes)
	HealthRoutes(router, health)

	return router
}

func CafeRoutes(router *gin.Engine, cafes *controller.CafeController) {
	router.GET("/", cafes.Home)
	router.GET("/random", cafes.GetRandomCafe)
	router.GET("/all", cafes.GetAllCafes)
	router.GET("/search", cafes.SearchCafes)
	router.GET("/add", cafes.AddCafe)
	router.POST("/add", cafes.AddCafe)
	router.PATCH("/update-price/:cafe_id", cafes.UpdatePrice)
}

func HealthRoutes(router *gin.Engine, health *controller.HealthController) {
	router.GET("/healthz", health.Healthz)
	router.GET("/readyz", health.Readyz)
}
