package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"customer-groups-api/internal/core/auth"
	"customer-groups-api/internal/service"
	mdw "customer-groups-api/internal/transport/http/middleware"
)

type Services struct {
	Users     *service.UserService
	Groups    *service.GroupService
	Customers *service.CustomerService
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, svc Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 鉴权分组；用户列表和注册登录走公共分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	RegisterUserRoutes(api, authed, svc.Users)
	RegisterGroupRoutes(authed, svc.Groups)
	RegisterCustomerRoutes(authed, svc.Customers)

	return r
}
