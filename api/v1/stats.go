package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var statsService = services.NewStatsService()

// GetDashboardStats returns aggregate totals across every project the
// authenticated user belongs to
func GetDashboardStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := statsService.DashboardStats(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, stats)
}
