package handlers

import (
	"net/http"
	"strconv"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetAdminUnitsByCap trả danh sách đơn vị hành chính một cấp, lọc theo mã cha.
// Route: GET /api/DonViHanhChinh/GetAllByCap/:cap?ma_cha=
// Cấp 2 trở lên mà không truyền mã cha thì trả rỗng: chưa chọn tỉnh
// thì dropdown huyện phải trống, không đoán mò.
func GetAdminUnitsByCap(c *gin.Context) {
	cap, err := strconv.Atoi(c.Param("cap"))
	if err != nil || cap < models.CapQuocGia || cap > models.CapXa {
		utils.APIResponse(c, http.StatusBadRequest, false, "Cấp hành chính không hợp lệ (1-4)", nil)
		return
	}

	maCha := c.Query("ma_cha")
	if cap > models.CapQuocGia && maCha == "" {
		utils.APIResponse(c, http.StatusOK, true, "Chưa chọn cấp cha", []models.AdminUnit{})
		return
	}

	query := config.DB.Where("cap = ?", cap)
	if maCha != "" {
		query = query.Where("ma_cha = ?", maCha)
	}

	var units []models.AdminUnit
	query.Order("ten asc").Find(&units)

	utils.APIResponse(c, http.StatusOK, true, "Danh sách đơn vị hành chính", units)
}
