package Middleware

import (
	"net/http"

	"ErpClinico/Models"
	"ErpClinico/Utils/Token"

	"github.com/gin-gonic/gin"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetCurrentUser resolves the authenticated user once per request and stores
// the pieces the handlers need: user id, permission level and, for therapist
// accounts, the therapist profile id. This replaces ambient global state with
// explicit per-request context.
func SetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.IsFrozen {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User Frozen"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("permission", user.Permission)

		if user.Permission == Models.PermissionTherapist {
			therapist, err := Models.GetTherapistByUserID(user.ID)
			if err == nil {
				c.Set("therapistID", therapist.ID)
			}
		}

		c.Next()
	}
}

func PermissionCheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		permission, exists := c.Get("permission")
		if !exists {
			c.String(http.StatusUnauthorized, "Unauthorized User Extraction")
			c.Abort()
			return
		}

		if permission.(int) >= Models.PermissionAdmin {
			c.Next()
		} else {
			c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
			c.Abort()
		}
	}
}
