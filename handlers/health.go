package handlers

import (
	"net/http"

	"amedick/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Hi, I'm AmedicK",
		"health":  status,
	})
}
