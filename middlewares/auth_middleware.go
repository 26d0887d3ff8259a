package middlewares

import (
	"net/http"
	"strings"

	"github.com/JhossefCons/Almacen-Papas-sub000/config"
	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/JhossefCons/Almacen-Papas-sub000/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AdminAuth guards the admin realm. Admin routes are where every gated
// mutation lives (stock adjustment, packaging override, loan creation,
// payroll, deletions).
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			c.Abort()
			return
		}
		claims, err := utils.VerifyAdminToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}
		if id, ok := claims["admin_id"].(float64); ok {
			c.Set("admin_id", uint(id))
		}
		if name, ok := claims["username"].(string); ok {
			c.Set("username", name)
		}
		c.Next()
	}
}

func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			c.Abort()
			return
		}
		claims, err := utils.VerifyUserToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}
		if id, ok := claims["user_id"].(float64); ok {
			c.Set("user_id", uint(id))
		}
		if name, ok := claims["username"].(string); ok {
			c.Set("username", name)
		}
		c.Next()
	}
}

// RequirePerm rejects the request with 403 unless the authenticated user
// holds the permission code. Mutations never fall through silently.
func RequirePerm(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("user_id")
		userID, cast := v.(uint)
		if !ok || !cast || userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			c.Abort()
			return
		}
		var cnt int64
		err := config.DB.Model(&models.UserPermission{}).
			Joins("JOIN permissions ON permissions.id = user_permissions.permission_id").
			Where("user_permissions.user_id = ? AND permissions.code = ?", userID, code).
			Count(&cnt).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "permission check failed", "error": err.Error()})
			c.Abort()
			return
		}
		if cnt == 0 {
			c.JSON(http.StatusForbidden, gin.H{"message": "permission denied", "required": code})
			c.Abort()
			return
		}
		c.Next()
	}
}
