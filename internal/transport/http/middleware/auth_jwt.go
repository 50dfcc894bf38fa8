package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"customer-groups-api/internal/core/auth"
	resp "customer-groups-api/internal/transport/http/response"
)

// AuthJWT 校验 Authorization 头，失败按缺失/过期/非法三类文案返回 401
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := j.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, err.Error()))
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
