package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/internal/draft"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var store *draft.Store

// Mã lượt khám / số hoá đơn: cùng kiểu uuid cắt ngắn như mã bệnh nhân,
// hai quầy submit cùng lúc không đụng nhau như mã theo timestamp
func sinhMaTiepNhan() string {
	return "TN-" + strings.ToUpper(uuid.NewString()[:8])
}

func sinhSoHoaDon() string {
	return "HD-" + strings.ToUpper(uuid.NewString()[:8])
}

// draftStore khởi tạo store lần đầu được gọi (sau khi ConnectRedis đã chạy)
func draftStore() *draft.Store {
	if store == nil {
		store = draft.NewStore(config.Redis)
	}
	return store
}

// GetDraft trả bản nháp tiếp nhận của nhân viên đang đăng nhập
// Route: GET /api/TiepNhan/Draft
func GetDraft(c *gin.Context) {
	clerkID, _ := c.Get("userID")

	d, err := draftStore().Load(c.Request.Context(), clerkID.(uint64))
	if err != nil {
		log.Printf("Đọc bản nháp lỗi: %v", err)
		// Redis trục trặc thì vẫn trả bản nháp rỗng cho quầy làm việc tiếp
	}

	utils.APIResponse(c, http.StatusOK, true, "Bản nháp tiếp nhận", d)
}

// SaveDraft ghi đè bản nháp, frontend gọi mỗi lần form thay đổi
// Route: PUT /api/TiepNhan/Draft
func SaveDraft(c *gin.Context) {
	clerkID, _ := c.Get("userID")

	var d draft.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Bản nháp không hợp lệ", err.Error())
		return
	}
	if d.ChiDinh == nil {
		d.ChiDinh = []draft.ChiDinhItem{}
	}

	// Đổi tỉnh/huyện thì các cấp dưới client còn gửi kèm phải bị xoá theo,
	// không tin client tự dọn
	truoc, err := draftStore().Load(c.Request.Context(), clerkID.(uint64))
	if err != nil {
		log.Printf("Đọc bản nháp cũ lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không lưu được bản nháp", nil)
		return
	}
	d.ApplyCascadeFrom(truoc)

	if err := draftStore().Save(c.Request.Context(), clerkID.(uint64), d); err != nil {
		log.Printf("Lưu bản nháp lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không lưu được bản nháp", nil)
		return
	}

	// Trả lại bản đã chuẩn hoá để form hiển thị đúng phần bị xoá theo cascade
	utils.APIResponse(c, http.StatusOK, true, "Đã lưu bản nháp", d)
}

// ResetDraft xoá bản nháp, quay về form trống
// Route: DELETE /api/TiepNhan/Draft
func ResetDraft(c *gin.Context) {
	clerkID, _ := c.Get("userID")

	if err := draftStore().Reset(c.Request.Context(), clerkID.(uint64)); err != nil {
		log.Printf("Xoá bản nháp lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không xoá được bản nháp", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Đã xoá bản nháp", draft.NewDraft())
}

// SubmitDraft validate rồi submit bản nháp đang lưu của nhân viên.
// Thành công thì xoá nháp, thất bại thì GIỮ NGUYÊN nháp để sửa và gửi lại.
// Route: POST /api/TiepNhan/Draft/Submit
func SubmitDraft(c *gin.Context) {
	clerkID, _ := c.Get("userID")

	d, err := draftStore().Load(c.Request.Context(), clerkID.(uint64))
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không đọc được bản nháp", nil)
		return
	}

	if errs := d.Validate(); len(errs) > 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Vui lòng kiểm tra lại thông tin", gin.H{
			"errors": errs,
		})
		return
	}

	reg, err := createRegistration(d.ToPayload())
	if err != nil {
		log.Printf("Submit tiếp nhận lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Tiếp nhận thất bại, vui lòng thử lại", nil)
		return
	}

	// Submit xong mới xoá nháp
	if err := draftStore().Reset(c.Request.Context(), clerkID.(uint64)); err != nil {
		log.Printf("Xoá bản nháp sau submit lỗi: %v", err)
	}

	utils.APIResponse(c, http.StatusCreated, true, "Tiếp nhận thành công", reg)
}

// CreateRegistration nhận payload đầy đủ từ frontend (contract cũ POST /api/TiepNhan)
func CreateRegistration(c *gin.Context) {
	var payload models.TiepNhanPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu tiếp nhận không hợp lệ", err.Error())
		return
	}

	// Validate chung một chỗ với đường submit nháp
	if errs := payloadToDraft(payload).Validate(); len(errs) > 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Vui lòng kiểm tra lại thông tin", gin.H{
			"errors": errs,
		})
		return
	}

	reg, err := createRegistration(payload)
	if err != nil {
		log.Printf("Tạo tiếp nhận lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Tiếp nhận thất bại, vui lòng thử lại", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Tiếp nhận thành công", reg)
}

// payloadToDraft đổi payload về shape bản nháp để dùng lại bộ Validate
func payloadToDraft(p models.TiepNhanPayload) draft.Draft {
	d := draft.NewDraft()
	d.BenhNhan.MaBenhNhan = p.BenhNhan.MaBenhNhan
	d.BenhNhan.HoTen = p.BenhNhan.TenBenhNhan
	d.BenhNhan.NgaySinh = p.BenhNhan.NgaySinh
	d.BenhNhan.GioiTinh = p.BenhNhan.GioiTinh
	d.BenhNhan.SoDienThoai = p.BenhNhan.SoDienThoai
	d.LichKham.Khoa = p.LichKham.Khoa
	d.LichKham.NgayKham = p.LichKham.NgayKham
	d.LichKham.GioKham = p.LichKham.GioKham
	for _, cls := range p.LstClsYeuCau {
		d.AddChiDinh(draft.ChiDinhItem{DichVuID: cls.DichVuID, MaDichVu: cls.MaDichVu})
	}
	return d
}

// createRegistration là nghiệp vụ tiếp nhận thật sự:
// tìm/tạo bệnh nhân -> tạo lượt khám -> tạo chỉ định -> tạo hoá đơn, gói trong một transaction
func createRegistration(payload models.TiepNhanPayload) (*models.Registration, error) {
	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	// 1. Bệnh nhân: có mã thì là bệnh nhân cũ, rỗng thì tạo hồ sơ mới
	var patient models.Patient
	if payload.BenhNhan.MaBenhNhan != "" {
		if err := tx.Where("ma_benh_nhan = ?", payload.BenhNhan.MaBenhNhan).First(&patient).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("không tìm thấy bệnh nhân %s: %w", payload.BenhNhan.MaBenhNhan, err)
		}
	} else {
		quocGia := payload.BenhNhan.QuocGia
		if quocGia == "" {
			quocGia = "VN"
		}
		patient = models.Patient{
			MaBenhNhan:    sinhMaBenhNhan(),
			SoCCCD:        payload.BenhNhan.SoCCCD,
			HoTen:         payload.BenhNhan.TenBenhNhan,
			HoTenKhongDau: utils.BoDau(payload.BenhNhan.TenBenhNhan),
			NgaySinh:      payload.BenhNhan.NgaySinh,
			GioiTinh:      payload.BenhNhan.GioiTinh,
			Phone:         payload.BenhNhan.SoDienThoai,
			SoBHYT:        payload.BenhNhan.SoBHYT,
			MaDanToc:      payload.BenhNhan.MaDanToc,
			QuocGia:       quocGia,
			MaTinh:        payload.BenhNhan.MaTinh,
			MaHuyen:       payload.BenhNhan.MaHuyen,
			MaXa:          payload.BenhNhan.MaXa,
			DiaChi:        payload.BenhNhan.DiaChi,
			DiaChiDayDu:   payload.BenhNhan.DiaChiDayDu,
		}
		if err := tx.Create(&patient).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	// 2. Lượt tiếp nhận
	var bacSiID *uint64
	if payload.LichKham.BacSiID != 0 {
		id := payload.LichKham.BacSiID
		bacSiID = &id
	}
	reg := models.Registration{
		MaTiepNhan: sinhMaTiepNhan(),
		PatientID:  patient.ID,
		Khoa:       payload.LichKham.Khoa,
		Phong:      payload.LichKham.Phong,
		BacSiID:    bacSiID,
		NgayKham:   payload.LichKham.NgayKham,
		GioKham:    payload.LichKham.GioKham,
		TrieuChung: payload.LichKham.TrieuChung,
		TrangThai:  models.RegChoKham,
	}
	if err := tx.Create(&reg).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// 3. Chỉ định: snapshot tên + giá tại thời điểm tiếp nhận
	var tongTien float64
	for _, cls := range payload.LstClsYeuCau {
		var service models.Service
		if err := tx.First(&service, cls.DichVuID).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("dịch vụ %d không tồn tại: %w", cls.DichVuID, err)
		}
		if service.TrangThai != models.ServiceActive {
			tx.Rollback()
			return nil, fmt.Errorf("dịch vụ %s đang tạm dừng", service.MaDichVu)
		}

		doUuTien := cls.DoUuTien
		if doUuTien == "" {
			doUuTien = "thuong"
		}
		order := models.ServiceOrder{
			RegistrationID: reg.ID,
			ServiceID:      service.ID,
			MaDichVu:       service.MaDichVu,
			TenDichVu:      service.TenDichVu,
			Gia:            service.GiaDichVu,
			DoUuTien:       doUuTien,
			GhiChu:         cls.GhiChu,
			TrangThai:      models.OrderPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		tongTien += service.GiaDichVu
	}

	// 4. Hoá đơn cho lượt khám
	invoice := models.Invoice{
		SoHoaDon:       sinhSoHoaDon(),
		PatientID:      patient.ID,
		RegistrationID: reg.ID,
		Total:          tongTien,
		Paid:           0,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// 5. Báo cho bác sĩ được chọn (ngoài transaction, lỗi cũng không sao)
	if bacSiID != nil {
		var bacSi models.User
		if err := config.DB.First(&bacSi, *bacSiID).Error; err == nil && bacSi.FCMToken != "" {
			go utils.SendNotification(
				bacSi.FCMToken,
				"Có bệnh nhân mới",
				fmt.Sprintf("Bệnh nhân %s đăng ký khám lúc %s", patient.HoTen, reg.GioKham),
				map[string]string{"ma_tiep_nhan": reg.MaTiepNhan, "type": "tiep_nhan_moi"},
			)
		}
	}

	// Trả bản ghi đầy đủ kèm chỉ định
	config.DB.Preload("Patient").Preload("Orders").Preload("BacSi").First(&reg, reg.ID)
	return &reg, nil
}

// GetRegistrations danh sách lượt khám (mặc định hôm nay), lọc theo trạng thái
// Route: GET /api/TiepNhan?ngay=&trang_thai=
func GetRegistrations(c *gin.Context) {
	ngay := c.DefaultQuery("ngay", time.Now().Format("2006-01-02"))
	trangThai := c.Query("trang_thai")

	query := config.DB.
		Preload("Patient").
		Preload("Orders").
		Preload("BacSi").
		Where("ngay_kham = ?", ngay).
		Order("gio_kham asc")

	if trangThai != "" {
		query = query.Where("trang_thai = ?", trangThai)
	}

	var regs []models.Registration
	query.Find(&regs)

	utils.APIResponse(c, http.StatusOK, true, "Danh sách tiếp nhận", regs)
}

// GetRegistration chi tiết một lượt tiếp nhận
func GetRegistration(c *gin.Context) {
	var reg models.Registration
	err := config.DB.
		Preload("Patient").
		Preload("Orders").
		Preload("BacSi").
		First(&reg, c.Param("id")).Error
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy lượt tiếp nhận", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Chi tiết tiếp nhận", reg)
}
