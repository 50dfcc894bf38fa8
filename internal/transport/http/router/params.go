package router

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"customer-groups-api/internal/transport/http/ez"
)

// uintParam 路径 id 解析；不是数字直接 400
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, ez.BadRequest("Invalid " + name + ". It must be an integer.")
	}
	return uint(v), nil
}

// parseOrder low_to_high 升序、high_to_low 降序，其它值拒绝
func parseOrder(order string) (descending bool, err error) {
	switch order {
	case "low_to_high":
		return false, nil
	case "high_to_low":
		return true, nil
	}
	return false, ez.BadRequest("Invalid order. Use 'high_to_low' or 'low_to_high'.")
}
