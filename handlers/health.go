package handlers

import (
	"net/http"

	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check run by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	label := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		label = "degraded"
	}
	c.JSON(code, gin.H{
		"status":    label,
		"services":  status.Services,
		"checkedAt": status.CheckedAt,
	})
}
