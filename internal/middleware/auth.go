package middleware

import (
	"net/http"
	"strings"

	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy header Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Thiếu token đăng nhập", nil)
			c.Abort()
			return
		}

		// 2. Format phải là "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token sai định dạng", nil)
			c.Abort()
			return
		}

		// 3. Kiểm tra token
		token, err := utils.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token không hợp lệ hoặc đã hết hạn", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Không đọc được token", nil)
			c.Abort()
			return
		}

		// JWT parse số thành float64, đổi lại đúng kiểu rồi nhét vào context
		var userID uint64
		if val, ok := claims["user_id"].(float64); ok {
			userID = uint64(val)
		}
		var roleID uint
		if val, ok := claims["role_id"].(float64); ok {
			roleID = uint(val)
		}
		var branchID uint
		if val, ok := claims["branch_id"].(float64); ok {
			branchID = uint(val)
		}

		c.Set("userID", userID)
		c.Set("roleID", roleID)
		c.Set("branchID", branchID)

		c.Next()
	}
}

func requireRoles(c *gin.Context, message string, roles ...uint) bool {
	roleID, exists := c.Get("roleID")
	if !exists {
		utils.APIResponse(c, http.StatusForbidden, false, "Không có quyền truy cập", nil)
		c.Abort()
		return false
	}
	role := roleID.(uint)
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	utils.APIResponse(c, http.StatusForbidden, false, message, nil)
	c.Abort()
	return false
}

// AdminOnly: chỉ admin mới được sửa danh mục, tạo tài khoản
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireRoles(c, "Chức năng này chỉ dành cho Admin", models.RoleAdmin) {
			c.Next()
		}
	}
}

// ThuNganOnly: thu tiền chỉ dành cho thu ngân (admin được xem ké)
func ThuNganOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireRoles(c, "Chức năng này chỉ dành cho Thu ngân", models.RoleAdmin, models.RoleThuNgan) {
			c.Next()
		}
	}
}

// BacSiOnly: màn khám bệnh
func BacSiOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireRoles(c, "Chức năng này chỉ dành cho Bác sĩ", models.RoleAdmin, models.RoleBacSi) {
			c.Next()
		}
	}
}
