package auth

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/warungkita/pos-service/internal/domain"
)

const userContextKey = "currentUser"

// RequireAuth resolves the bearer token and stashes the user in the
// request context.
func RequireAuth(svc *Service) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        token := strings.TrimPrefix(header, "Bearer ")
        if token == "" || token == header {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
                "error": "Missing bearer token",
            })
            return
        }

        user, err := svc.Current(token)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
                "error": "Invalid session",
            })
            return
        }

        c.Set(userContextKey, user)
        c.Next()
    }
}

// RequireAdmin gates admin-console endpoints. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
    return func(c *gin.Context) {
        user, ok := CurrentUser(c)
        if !ok || user.Role != domain.RoleAdmin {
            c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
                "error": "Admin role required",
            })
            return
        }
        c.Next()
    }
}

// CurrentUser reads the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
    value, ok := c.Get(userContextKey)
    if !ok {
        return domain.User{}, false
    }
    user, ok := value.(domain.User)
    return user, ok
}
