package handlers

import (
	"log"
	"net/http"
	"strings"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// buildServiceQuery dựng câu query gorm từ bộ lọc.
// Đây là đường lọc DUY NHẤT của danh mục: màn danh sách, tìm kiếm nâng cao
// và export đều đi qua đây nên kết quả luôn khớp nhau.
func buildServiceQuery(q models.ServiceQuery) *gorm.DB {
	query := config.DB.Model(&models.Service{})

	if q.Keyword != "" {
		like := "%" + strings.ToLower(q.Keyword) + "%"
		likeKhongDau := "%" + strings.ToLower(utils.BoDau(q.Keyword)) + "%"
		query = query.Where(
			"LOWER(ma_dich_vu) LIKE ? OR LOWER(ten_dich_vu) LIKE ? OR LOWER(ten_khong_dau) LIKE ?",
			like, like, likeKhongDau,
		)
	}
	if q.Nhom != "" {
		query = query.Where("nhom = ?", q.Nhom)
	}
	if q.Khoa != "" {
		query = query.Where("khoa = ?", q.Khoa)
	}
	if q.TrangThai != "" {
		query = query.Where("trang_thai = ?", q.TrangThai)
	}
	if q.GiaTu != nil {
		query = query.Where("gia_dich_vu >= ?", *q.GiaTu)
	}
	if q.GiaDen != nil {
		query = query.Where("gia_dich_vu <= ?", *q.GiaDen)
	}
	if q.TuNgay != "" {
		query = query.Where("created_at >= ?", q.TuNgay)
	}
	if q.DenNgay != "" {
		query = query.Where("created_at < DATE_ADD(?, INTERVAL 1 DAY)", q.DenNgay)
	}

	return query
}

// GetServices liệt kê danh mục dịch vụ theo bộ lọc + phân trang
// Route: GET /api/DichVu
func GetServices(c *gin.Context) {
	var q models.ServiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Bộ lọc không hợp lệ", err.Error())
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 200 {
		q.PageSize = 20
	}

	query := buildServiceQuery(q)

	var total int64
	query.Count(&total)

	var services []models.Service
	query.Order("ma_dich_vu asc").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&services)

	utils.APIResponse(c, http.StatusOK, true, "Danh mục dịch vụ", gin.H{
		"items":     services,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// CreateService thêm dịch vụ mới vào danh mục
func CreateService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu dịch vụ không hợp lệ", err.Error())
		return
	}
	if input.GiaMin > 0 && input.GiaMax > 0 && input.GiaMin > input.GiaMax {
		utils.APIResponse(c, http.StatusBadRequest, false, "Giá tối thiểu không được lớn hơn giá tối đa", nil)
		return
	}

	trangThai := input.TrangThai
	if trangThai == "" {
		trangThai = models.ServiceActive
	}

	service := models.Service{
		MaDichVu:    input.MaDichVu,
		TenDichVu:   input.TenDichVu,
		TenKhongDau: utils.BoDau(input.TenDichVu),
		Nhom:        input.Nhom,
		Khoa:        input.Khoa,
		DonViTinh:   input.DonViTinh,
		GiaDichVu:   input.GiaDichVu,
		GiaBaoHiem:  input.GiaBaoHiem,
		GiaMin:      input.GiaMin,
		GiaMax:      input.GiaMax,
		TrangThai:   trangThai,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		log.Printf("Tạo dịch vụ lỗi: %v", err)
		utils.APIResponse(c, http.StatusBadRequest, false, "Mã dịch vụ đã tồn tại hoặc dữ liệu không hợp lệ", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Thêm dịch vụ thành công", service)
}

// UpdateService sửa một dịch vụ
func UpdateService(c *gin.Context) {
	var service models.Service
	if err := config.DB.First(&service, c.Param("id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy dịch vụ", nil)
		return
	}

	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu dịch vụ không hợp lệ", err.Error())
		return
	}
	if input.GiaMin > 0 && input.GiaMax > 0 && input.GiaMin > input.GiaMax {
		utils.APIResponse(c, http.StatusBadRequest, false, "Giá tối thiểu không được lớn hơn giá tối đa", nil)
		return
	}

	service.MaDichVu = input.MaDichVu
	service.TenDichVu = input.TenDichVu
	service.TenKhongDau = utils.BoDau(input.TenDichVu)
	service.Nhom = input.Nhom
	service.Khoa = input.Khoa
	service.DonViTinh = input.DonViTinh
	service.GiaDichVu = input.GiaDichVu
	service.GiaBaoHiem = input.GiaBaoHiem
	service.GiaMin = input.GiaMin
	service.GiaMax = input.GiaMax
	if input.TrangThai != "" {
		service.TrangThai = input.TrangThai
	}

	if err := config.DB.Save(&service).Error; err != nil {
		log.Printf("Cập nhật dịch vụ %d lỗi: %v", service.ID, err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không cập nhật được dịch vụ", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Cập nhật dịch vụ thành công", service)
}

// DeleteService xoá một dịch vụ khỏi danh mục
func DeleteService(c *gin.Context) {
	if err := config.DB.Delete(&models.Service{}, c.Param("id")).Error; err != nil {
		log.Printf("Xoá dịch vụ lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không xoá được dịch vụ", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Đã xoá dịch vụ", nil)
}

// DuplicateService nhân bản một dịch vụ với mã mới (tiện khi tạo dịch vụ gần giống)
// Route: POST /api/DichVu/:id/Duplicate
func DuplicateService(c *gin.Context) {
	var goc models.Service
	if err := config.DB.First(&goc, c.Param("id")).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy dịch vụ", nil)
		return
	}

	ban := goc
	ban.ID = 0
	ban.MaDichVu = goc.MaDichVu + "-COPY"
	ban.TenDichVu = goc.TenDichVu + " (bản sao)"
	ban.TenKhongDau = utils.BoDau(ban.TenDichVu)
	ban.TrangThai = models.ServicePaused // Bản sao để tạm dừng, sửa xong mới bật

	if err := config.DB.Create(&ban).Error; err != nil {
		log.Printf("Nhân bản dịch vụ %d lỗi: %v", goc.ID, err)
		utils.APIResponse(c, http.StatusBadRequest, false, "Không nhân bản được, có thể đã có bản sao trước đó", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Đã nhân bản dịch vụ", ban)
}

type bulkUpdateInput struct {
	IDs       []uint64 `json:"ids" binding:"required,min=1"`
	TrangThai string   `json:"trang_thai" binding:"required,oneof=active paused"`
}

// BulkUpdateServices bật/tắt hàng loạt theo danh sách id đã chọn
// Route: POST /api/DichVu/BulkUpdate
func BulkUpdateServices(c *gin.Context) {
	var input bulkUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", err.Error())
		return
	}

	result := config.DB.Model(&models.Service{}).
		Where("id IN ?", input.IDs).
		Update("trang_thai", input.TrangThai)
	if result.Error != nil {
		log.Printf("BulkUpdate dịch vụ lỗi: %v", result.Error)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không cập nhật được", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Cập nhật hàng loạt thành công", gin.H{
		"affected": result.RowsAffected,
	})
}

type bulkDeleteInput struct {
	IDs []uint64 `json:"ids" binding:"required,min=1"`
}

// BulkDeleteServices xoá hàng loạt theo danh sách id đã chọn
// Route: POST /api/DichVu/BulkDelete
func BulkDeleteServices(c *gin.Context) {
	var input bulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", err.Error())
		return
	}

	result := config.DB.Delete(&models.Service{}, input.IDs)
	if result.Error != nil {
		log.Printf("BulkDelete dịch vụ lỗi: %v", result.Error)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không xoá được", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Xoá hàng loạt thành công", gin.H{
		"affected": result.RowsAffected,
	})
}
