package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetActor returns the authenticated actor (ID plus role) from the context.
// The second return value is false when the request is unauthenticated or the
// stored role is not part of the closed role set.
func GetActor(c *gin.Context) (Actor, bool) {
	id := GetUserID(c)
	if id == "" {
		return Actor{}, false
	}

	raw, ok := c.Get("userRole")
	if !ok {
		return Actor{}, false
	}
	s, ok := raw.(string)
	if !ok {
		return Actor{}, false
	}
	role, ok := ParseRole(s)
	if !ok {
		return Actor{}, false
	}

	return Actor{ID: id, Role: role}, true
}
