package handler

import (
	"log"
	"net/http"

	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"
	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMe returns the current user's public fields.
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			util.JSONError(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.JSONError(c, http.StatusUnauthorized, "Token is not valid")
			} else {
				log.Printf("me: query user: %v", err)
				util.JSONError(c, http.StatusInternalServerError, "Server error")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": publicUser(&user)})
	}
}
