package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
)

var userRepository = repositories.NewUserRepository()

// ListUsers returns every profile in the system. Admin only.
func ListUsers(c *gin.Context) {
	users, err := userRepository.FindAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, users)
}
