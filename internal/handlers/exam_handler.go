package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetMyQueue danh sách bệnh nhân chờ khám hôm nay của bác sĩ đang đăng nhập
// Route: GET /api/KhamBenh/HangCho
func GetMyQueue(c *gin.Context) {
	bacSiID, _ := c.Get("userID")
	homNay := time.Now().Format("2006-01-02")

	var regs []models.Registration
	config.DB.
		Preload("Patient").
		Preload("Orders").
		Where("bac_si_id = ? AND ngay_kham = ? AND trang_thai <> ?", bacSiID, homNay, models.RegDaKham).
		Order("gio_kham asc").
		Find(&regs)

	utils.APIResponse(c, http.StatusOK, true, "Hàng chờ khám hôm nay", regs)
}

type createExamInput struct {
	Vitals  models.VitalsDetail `json:"vitals"`
	KetLuan string              `json:"ket_luan" binding:"required"`
}

// SubmitExamRecord bác sĩ ghi phiếu khám: sinh hiệu + kết luận.
// Ghi phiếu xong thì lượt khám chuyển sang đã khám.
// Route: POST /api/KhamBenh/:id/PhieuKham
func SubmitExamRecord(c *gin.Context) {
	bacSiID, _ := c.Get("userID")
	regID := utils.StringToUint64(c.Param("id"))

	var reg models.Registration
	if err := config.DB.First(&reg, regID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy lượt tiếp nhận", nil)
		return
	}

	var input createExamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu phiếu khám không hợp lệ", err.Error())
		return
	}

	// Sinh hiệu lưu thành cột JSON
	vitalsJSON, _ := json.Marshal(input.Vitals)

	record := models.ExamRecord{
		RegistrationID: regID,
		BacSiID:        bacSiID.(uint64),
		VitalsData:     vitalsJSON,
		KetLuan:        input.KetLuan,
	}

	if err := config.DB.Create(&record).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không lưu được phiếu khám", nil)
		return
	}

	// Có phiếu khám nghĩa là đã khám xong. Chỉ định thì vẫn chuyển từng cái
	// qua API riêng, không auto complete ở đây.
	config.DB.Model(&reg).Update("trang_thai", models.RegDaKham)

	utils.APIResponse(c, http.StatusCreated, true, "Đã lưu phiếu khám", record)
}

// GetExamRecords xem các phiếu khám của một lượt tiếp nhận
// Route: GET /api/KhamBenh/:id/PhieuKham
func GetExamRecords(c *gin.Context) {
	regID := utils.StringToUint64(c.Param("id"))

	var records []models.ExamRecord
	config.DB.Where("registration_id = ?", regID).Order("logged_at desc").Find(&records)

	utils.APIResponse(c, http.StatusOK, true, "Phiếu khám", records)
}

type orderTransitionInput struct {
	TrangThai string `json:"trang_thai" binding:"required,oneof=in-progress completed cancelled"`
}

// TransitionOrder đổi trạng thái một chỉ định theo vòng đời một chiều:
// pending -> in-progress -> completed, huỷ chỉ khi còn pending.
// Route: PUT /api/KhamBenh/ChiDinh/:orderId
func TransitionOrder(c *gin.Context) {
	var order models.ServiceOrder
	if err := config.DB.First(&order, c.Param("orderId")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy chỉ định", nil)
		return
	}

	var input orderTransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", err.Error())
		return
	}

	if err := order.Transition(input.TrangThai); err != nil {
		if errors.Is(err, models.ErrChuyenTrangThai) {
			utils.APIResponse(c, http.StatusBadRequest, false,
				"Không thể chuyển từ "+order.TrangThai+" sang "+input.TrangThai, nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Lỗi xử lý", nil)
		return
	}

	if err := config.DB.Model(&order).Update("trang_thai", order.TrangThai).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không cập nhật được chỉ định", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Đã cập nhật chỉ định", order)
}
