package handlers

import (
	"net/http"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Register tạo tài khoản nhân viên mới (chỉ Admin gọi được)
func Register(c *gin.Context) {
	var input models.RegisterInput

	// 1. Validate JSON đầu vào
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", err.Error())
		return
	}

	// 2. Băm mật khẩu
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không xử lý được mật khẩu", nil)
		return
	}

	// 3. Chuẩn bị bản ghi user
	branchID := input.BranchID
	if branchID == 0 {
		branchID = 1
	}
	user := models.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		RoleID:       input.RoleID,
		Phone:        input.Phone,
		BranchID:     branchID,
		ChuyenKhoa:   input.ChuyenKhoa,
		IsActive:     true,
	}

	// 4. Lưu DB
	if err := config.DB.Create(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Email đã được đăng ký!", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Tạo tài khoản thành công", user)
}

// Login đăng nhập bằng email + mật khẩu, trả JWT
func Login(c *gin.Context) {
	var input models.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", nil)
		return
	}

	// 1. Tìm user theo email
	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email hoặc mật khẩu không đúng", nil)
		return
	}

	// 2. So mật khẩu
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Email hoặc mật khẩu không đúng", nil)
		return
	}

	if !user.IsActive {
		utils.APIResponse(c, http.StatusForbidden, false, "Tài khoản đã bị khoá", nil)
		return
	}

	// 3. App mobile gửi kèm FCM token thì lưu lại để đẩy thông báo
	if input.FCMToken != "" {
		config.DB.Model(&user).Update("fcm_token", input.FCMToken)
	}

	// 4. Phát JWT
	token, err := utils.GenerateToken(user.ID, user.RoleID, user.BranchID)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không tạo được token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Đăng nhập thành công", gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"role_id":   user.RoleID,
			"branch_id": user.BranchID,
			"email":     user.Email,
		},
	})
}
