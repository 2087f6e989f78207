package handlers

import (
	"net/http"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetUserProfile lấy thông tin nhân viên đang đăng nhập
func GetUserProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Chưa đăng nhập", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy nhân viên", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Thông tin tài khoản", gin.H{
		"id":          user.ID,
		"full_name":   user.FullName,
		"email":       user.Email,
		"phone":       user.Phone,
		"role_id":     user.RoleID,
		"branch_id":   user.BranchID,
		"chuyen_khoa": user.ChuyenKhoa,
	})
}

// GetBacSi trả danh sách bác sĩ theo chi nhánh, cho dropdown chọn bác sĩ
// Route: GET /api/Users/GetBacSi/:branchId
func GetBacSi(c *gin.Context) {
	branchID := utils.StringToUint64(c.Param("branchId"))

	var doctors []models.User
	config.DB.
		Where("role_id = ? AND branch_id = ? AND is_active = ?", models.RoleBacSi, branchID, true).
		Order("full_name asc").
		Find(&doctors)

	utils.APIResponse(c, http.StatusOK, true, "Danh sách bác sĩ", doctors)
}

// GetDanToc trả danh mục dân tộc cho form tiếp nhận
// Route: GET /api/DanToc
func GetDanToc(c *gin.Context) {
	var list []models.Ethnicity
	config.DB.Order("id asc").Find(&list)

	utils.APIResponse(c, http.StatusOK, true, "Danh mục dân tộc", list)
}
