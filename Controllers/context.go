package Controllers

import (
	"github.com/gin-gonic/gin"
)

// currentTherapistID returns the therapist profile id stored by the
// SetCurrentUser middleware, or 0 when the caller is not a therapist.
func currentTherapistID(c *gin.Context) uint {
	value, exists := c.Get("therapistID")
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

func currentPermission(c *gin.Context) int {
	value, exists := c.Get("permission")
	if !exists {
		return 0
	}
	permission, ok := value.(int)
	if !ok {
		return 0
	}
	return permission
}

func currentUserID(c *gin.Context) uint {
	value, exists := c.Get("userID")
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}
