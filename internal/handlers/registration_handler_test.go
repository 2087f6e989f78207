package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-backend/internal/config"
	"clinic-backend/internal/draft"
	"clinic-backend/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDraftRouter gắn Redis giả vào config + router có sẵn userID trong context
func newDraftRouter(t *testing.T, clerkID uint64) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)

	cuRedis, cuStore := config.Redis, store
	config.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store = nil
	t.Cleanup(func() { config.Redis, store = cuRedis, cuStore })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", clerkID) })
	r.PUT("/api/TiepNhan/Draft", SaveDraft)
	r.GET("/api/TiepNhan/Draft", GetDraft)
	return r
}

func putDraft(t *testing.T, r *gin.Engine, d draft.Draft) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/TiepNhan/Draft", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Client đổi tỉnh nhưng vẫn gửi kèm huyện/xã/đường của tỉnh cũ:
// server phải tự dọn trước khi lưu, không tin client
func TestSaveDraftDonCascadeKhiDoiTinh(t *testing.T) {
	r := newDraftRouter(t, 7)

	cu := draft.NewDraft()
	cu.SetTinh("01", "Hà Nội")
	cu.SetHuyen("002", "Hoàn Kiếm")
	cu.SetXa("00037", "Hàng Bạc")
	cu.BenhNhan.DiaChi = "12 Hàng Bạc"
	cu.RebuildDiaChiDayDu()
	require.Equal(t, http.StatusOK, putDraft(t, r, cu).Code)

	stale := cu
	stale.BenhNhan.MaTinh = "79"
	stale.BenhNhan.TenTinh = "TP. Hồ Chí Minh"
	// Huyện/xã/đường của Hà Nội vẫn nằm nguyên trong payload
	w := putDraft(t, r, stale)
	require.Equal(t, http.StatusOK, w.Code)

	luu, err := draft.NewStore(config.Redis).Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "79", luu.BenhNhan.MaTinh)
	assert.Empty(t, luu.BenhNhan.MaHuyen, "huyện mồ côi không được lọt vào Redis")
	assert.Empty(t, luu.BenhNhan.MaXa)
	assert.Empty(t, luu.BenhNhan.DiaChi)
	assert.Equal(t, "TP. Hồ Chí Minh", luu.BenhNhan.DiaChiDayDu)

	// Response cũng trả bản đã dọn để form hiển thị đúng
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	bn := data["benhNhan"].(map[string]interface{})
	assert.Equal(t, "", bn["maHuyen"])
	assert.Equal(t, "", bn["diaChi"])
}

func TestSaveDraftDoiHuyenDonXaVaDuong(t *testing.T) {
	r := newDraftRouter(t, 9)

	cu := draft.NewDraft()
	cu.SetTinh("01", "Hà Nội")
	cu.SetHuyen("001", "Ba Đình")
	cu.SetXa("00001", "Phúc Xá")
	cu.BenhNhan.DiaChi = "5 Phúc Xá"
	require.Equal(t, http.StatusOK, putDraft(t, r, cu).Code)

	stale := cu
	stale.BenhNhan.MaHuyen = "002"
	stale.BenhNhan.TenHuyen = "Hoàn Kiếm"
	require.Equal(t, http.StatusOK, putDraft(t, r, stale).Code)

	luu, err := draft.NewStore(config.Redis).Load(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "01", luu.BenhNhan.MaTinh, "tỉnh giữ nguyên")
	assert.Equal(t, "002", luu.BenhNhan.MaHuyen)
	assert.Empty(t, luu.BenhNhan.MaXa)
	assert.Empty(t, luu.BenhNhan.DiaChi)
}

func TestSaveDraftKhongDoiCapGiuNguyen(t *testing.T) {
	r := newDraftRouter(t, 11)

	cu := draft.NewDraft()
	cu.SetTinh("01", "Hà Nội")
	cu.SetHuyen("002", "Hoàn Kiếm")
	cu.SetXa("00037", "Hàng Bạc")
	require.Equal(t, http.StatusOK, putDraft(t, r, cu).Code)

	// Chỉ gõ thêm số nhà, không đổi cấp nào
	moi := cu
	moi.BenhNhan.DiaChi = "34 Hàng Đào"
	require.Equal(t, http.StatusOK, putDraft(t, r, moi).Code)

	luu, err := draft.NewStore(config.Redis).Load(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "00037", luu.BenhNhan.MaXa)
	assert.Equal(t, "34 Hàng Đào", luu.BenhNhan.DiaChi)
	assert.Equal(t, "34 Hàng Đào, Hàng Bạc, Hoàn Kiếm, Hà Nội", luu.BenhNhan.DiaChiDayDu)
}

// Hai quầy submit cùng một mili-giây vẫn phải ra mã khác nhau
func TestSinhMaTiepNhanVaSoHoaDonKhongTrung(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		ma := sinhMaTiepNhan()
		so := sinhSoHoaDon()
		assert.True(t, strings.HasPrefix(ma, "TN-"))
		assert.True(t, strings.HasPrefix(so, "HD-"))
		require.False(t, seen[ma], "mã tiếp nhận trùng: %s", ma)
		require.False(t, seen[so], "số hoá đơn trùng: %s", so)
		seen[ma], seen[so] = true, true
	}
}

// Payload lỗi phải bị chặn ở bước validate, chưa đụng tới DB
func TestCreateRegistrationPayloadThieuThongTin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/TiepNhan", CreateRegistration)

	body := map[string]interface{}{
		"benhNhan": map[string]interface{}{
			"tenBenhNhan": "", // Thiếu tên
			"ngaySinh":    "1990-01-01",
			"gioiTinh":    "nam",
			"soDienThoai": "12345", // SĐT sai
		},
		"lichKham": map[string]interface{}{
			"khoa":     "Khoa Khám Bệnh",
			"ngayKham": "2025-01-10",
			"gioKham":  "08:00",
		},
		"lstClsYeuCau": []map[string]interface{}{
			{"dichVuId": 1, "maDichVu": "XN001"},
		},
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/TiepNhan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	errs := data["errors"].(map[string]interface{})
	assert.Contains(t, errs, "hoTen")
	assert.Contains(t, errs, "soDienThoai")
	assert.NotContains(t, errs, "khoa", "field hợp lệ không bị báo lỗi")
}

func TestCreateRegistrationBodyKhongPhaiJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/TiepNhan", CreateRegistration)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/TiepNhan", bytes.NewReader([]byte("khong phai json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestCreateRegistrationKhongCoChiDinh(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/TiepNhan", CreateRegistration)

	body := map[string]interface{}{
		"benhNhan": map[string]interface{}{
			"tenBenhNhan": "Nguyễn Văn An",
			"ngaySinh":    "1990-01-01",
			"gioiTinh":    "nam",
			"soDienThoai": "0912345678",
		},
		"lichKham": map[string]interface{}{
			"khoa":     "Khoa Khám Bệnh",
			"ngayKham": "2025-01-10",
			"gioKham":  "08:00",
		},
		"lstClsYeuCau": []map[string]interface{}{},
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/TiepNhan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errs := resp.Data.(map[string]interface{})["errors"].(map[string]interface{})
	assert.Contains(t, errs, "chiDinh")
}
