package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sinhMaBenhNhan tạo mã bệnh nhân dạng BN-XXXXXXXX
func sinhMaBenhNhan() string {
	return "BN-" + strings.ToUpper(uuid.NewString()[:8])
}

// SearchPatients tìm bệnh nhân cho ô search ở quầy tiếp nhận.
// Keyword so trên tên (có dấu lẫn không dấu), SĐT, CCCD và mã bệnh nhân.
// Route: GET /api/BenhNhan?keyword=&page=&page_size=
func SearchPatients(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("keyword"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := config.DB.Model(&models.Patient{})
	if keyword != "" {
		like := "%" + keyword + "%"
		likeKhongDau := "%" + utils.BoDau(keyword) + "%"
		query = query.Where(
			"ho_ten LIKE ? OR ho_ten_khong_dau LIKE ? OR phone LIKE ? OR so_cccd LIKE ? OR ma_benh_nhan LIKE ?",
			like, likeKhongDau, like, like, like,
		)
	}

	var total int64
	query.Count(&total)

	var patients []models.Patient
	query.Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&patients)

	utils.APIResponse(c, http.StatusOK, true, "Danh sách bệnh nhân", gin.H{
		"items":     patients,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPatient lấy chi tiết một bệnh nhân
func GetPatient(c *gin.Context) {
	var patient models.Patient
	if err := config.DB.First(&patient, c.Param("id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy bệnh nhân", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Chi tiết bệnh nhân", patient)
}

// CreatePatient thêm bệnh nhân mới từ form tiếp nhận
func CreatePatient(c *gin.Context) {
	var input models.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu bệnh nhân không hợp lệ", err.Error())
		return
	}

	quocGia := input.QuocGia
	if quocGia == "" {
		quocGia = "VN"
	}

	patient := models.Patient{
		MaBenhNhan:    sinhMaBenhNhan(),
		SoCCCD:        input.SoCCCD,
		HoTen:         input.HoTen,
		HoTenKhongDau: utils.BoDau(input.HoTen),
		NgaySinh:      input.NgaySinh,
		GioiTinh:      input.GioiTinh,
		Phone:         input.Phone,
		SoBHYT:        input.SoBHYT,
		MaDanToc:      input.MaDanToc,
		QuocGia:       quocGia,
		MaTinh:        input.MaTinh,
		MaHuyen:       input.MaHuyen,
		MaXa:          input.MaXa,
		DiaChi:        input.DiaChi,
		DiaChiDayDu:   input.DiaChiDayDu,
	}

	if err := config.DB.Create(&patient).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không lưu được bệnh nhân", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Thêm bệnh nhân thành công", patient)
}

// UpdatePatient sửa hồ sơ bệnh nhân (dùng chung input với tạo mới)
func UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := config.DB.First(&patient, c.Param("id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy bệnh nhân", nil)
		return
	}

	var input models.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu bệnh nhân không hợp lệ", err.Error())
		return
	}

	patient.SoCCCD = input.SoCCCD
	patient.HoTen = input.HoTen
	patient.HoTenKhongDau = utils.BoDau(input.HoTen)
	patient.NgaySinh = input.NgaySinh
	patient.GioiTinh = input.GioiTinh
	patient.Phone = input.Phone
	patient.SoBHYT = input.SoBHYT
	patient.MaDanToc = input.MaDanToc
	if input.QuocGia != "" {
		patient.QuocGia = input.QuocGia
	}
	patient.MaTinh = input.MaTinh
	patient.MaHuyen = input.MaHuyen
	patient.MaXa = input.MaXa
	patient.DiaChi = input.DiaChi
	patient.DiaChiDayDu = input.DiaChiDayDu

	if err := config.DB.Save(&patient).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không cập nhật được bệnh nhân", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Cập nhật bệnh nhân thành công", patient)
}

// DeletePatient xoá hồ sơ (chỉ Admin)
func DeletePatient(c *gin.Context) {
	var patient models.Patient
	if err := config.DB.First(&patient, c.Param("id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy bệnh nhân", nil)
		return
	}

	if err := config.DB.Delete(&patient).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không xoá được bệnh nhân", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Đã xoá bệnh nhân", nil)
}

// GetPatientHistory xem lịch sử các lượt khám của một bệnh nhân
// Route: GET /api/BenhNhan/:id/LichSu
func GetPatientHistory(c *gin.Context) {
	patientID := utils.StringToUint64(c.Param("id"))

	var regs []models.Registration
	config.DB.
		Preload("Orders").
		Preload("BacSi").
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&regs)

	utils.APIResponse(c, http.StatusOK, true, "Lịch sử khám", regs)
}
