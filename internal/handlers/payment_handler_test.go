package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB gắn một DB giả vào config.DB, trả về handle mock để khai báo query
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	cu := config.DB
	config.DB = gdb
	t.Cleanup(func() { config.DB = cu })

	return mock
}

func TestCreatePaymentMethodLa(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/ThanhToan", CreatePayment)

	// Method ngoài danh sách cho phép: chặn ngay ở binding, chưa đụng DB
	raw, _ := json.Marshal(map[string]interface{}{
		"invoice_id": 1,
		"amount":     100000,
		"method":     "chuyenkhoan",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ThanhToan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestCreatePaymentThieuField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/ThanhToan", CreatePayment)

	raw, _ := json.Marshal(map[string]interface{}{"method": "tienmat"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ThanhToan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentVuotSoConLai(t *testing.T) {
	mock := newMockDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/ThanhToan", CreatePayment)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `invoices`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "so_hoa_don", "patient_id", "registration_id", "total", "paid", "created_at", "updated_at",
		}).AddRow(1, "HD-1", 1, 1, 420000, 200000, now, now))
	mock.ExpectQuery("SELECT \\* FROM `patients`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ma_benh_nhan", "ho_ten"}).
			AddRow(1, "BN-TEST01", "Nguyễn Văn An"))

	// Còn phải thu 220000, đòi thu 300000: phải bị chặn, không sinh phiếu thu
	raw, _ := json.Marshal(map[string]interface{}{
		"invoice_id": 1,
		"amount":     300000,
		"method":     "tienmat",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ThanhToan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPatientInvoicesTinhSanConLai(t *testing.T) {
	mock := newMockDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/ThanhToan/BenhNhan/:id", GetPatientInvoices)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `invoices`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "so_hoa_don", "patient_id", "registration_id", "total", "paid", "created_at", "updated_at",
		}).AddRow(1, "HD-1", 5, 1, 420000, 200000, now, now))
	mock.ExpectQuery("SELECT \\* FROM `payment_receipts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "so_phieu", "amount", "method"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ThanhToan/BenhNhan/5", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	list := resp.Data.([]interface{})
	require.Len(t, list, 1)
	item := list[0].(map[string]interface{})
	assert.Equal(t, "partial", item["trang_thai"])
	assert.Equal(t, float64(220000), item["con_lai"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
