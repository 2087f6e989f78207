package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"
	"clinic-backend/pkg/vietqr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

var qrClient *vietqr.Client

func vietqrClient() *vietqr.Client {
	if qrClient == nil {
		qrClient = vietqr.NewClient()
	}
	return qrClient
}

func sinhSoPhieu() string {
	return "PT-" + strings.ToUpper(uuid.NewString()[:8])
}

// GetPatientInvoices liệt kê hoá đơn của một bệnh nhân kèm số còn phải thu.
// Màn thu ngân chọn bệnh nhân xong gọi cái này.
// Route: GET /api/ThanhToan/BenhNhan/:id
func GetPatientInvoices(c *gin.Context) {
	patientID := utils.StringToUint64(c.Param("id"))

	var invoices []models.Invoice
	config.DB.
		Preload("Receipts").
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&invoices)

	// Đính kèm status + remaining tính sẵn cho frontend
	out := make([]gin.H, 0, len(invoices))
	for _, iv := range invoices {
		out = append(out, gin.H{
			"invoice":    iv,
			"trang_thai": iv.Status(),
			"con_lai":    iv.Remaining(),
		})
	}

	utils.APIResponse(c, http.StatusOK, true, "Hoá đơn của bệnh nhân", out)
}

type paymentInput struct {
	InvoiceID uint64  `json:"invoice_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Method    string  `json:"method" binding:"required,oneof=tienmat the vietqr"`
}

// CreatePayment xử lý một lần bấm thanh toán tại quầy thu ngân.
// Số tiền phải > 0 và <= số còn lại; đúng bằng số còn lại thì vẫn hợp lệ.
//   - tienmat: thu ngay, trả phiếu thu
//   - vietqr : trả link ảnh QR, chờ bước xác nhận (mô phỏng, chưa nối callback ngân hàng)
//   - the    : tạo giao dịch bên cổng thanh toán, chờ webhook báo về
//
// Route: POST /api/ThanhToan
func CreatePayment(c *gin.Context) {
	var input paymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu thanh toán không hợp lệ", err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Patient").First(&invoice, input.InvoiceID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy hoá đơn", nil)
		return
	}

	// Check ràng buộc số tiền trước, cả ba nhánh đều phải qua cửa này
	if input.Amount <= 0 {
		utils.APIResponse(c, http.StatusBadRequest, false, "Số tiền thanh toán phải lớn hơn 0", nil)
		return
	}
	if input.Amount > invoice.Remaining() {
		utils.APIResponse(c, http.StatusBadRequest, false,
			fmt.Sprintf("Số tiền vượt quá số còn phải thu (%.0f)", invoice.Remaining()), nil)
		return
	}

	switch input.Method {
	case models.PayTienMat:
		receipt, err := settlePayment(&invoice, input.Amount, models.PayTienMat, "")
		if err != nil {
			log.Printf("Thu tiền mặt lỗi: %v", err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Thanh toán thất bại", nil)
			return
		}
		utils.APIResponse(c, http.StatusOK, true, "Thanh toán thành công", gin.H{
			"receipt":    receipt,
			"trang_thai": invoice.Status(),
			"con_lai":    invoice.Remaining(),
		})

	case models.PayVietQR:
		// Chỉ sinh ảnh QR, tiền chưa vào. Thu ngân nhìn app ngân hàng báo có
		// rồi bấm xác nhận ở bước sau.
		memo := fmt.Sprintf("%s %s", invoice.SoHoaDon, invoice.Patient.MaBenhNhan)
		utils.APIResponse(c, http.StatusOK, true, "Quét mã QR để chuyển khoản", gin.H{
			"qr_url":  vietqrClient().ImageURL(input.Amount, memo),
			"so_tien": input.Amount,
			"noi_dung": memo,
		})

	case models.PayThe:
		resp, orderNo, err := taoGiaoDichCong(invoice, input.Amount)
		if err != nil {
			log.Printf("Tạo giao dịch cổng thanh toán lỗi: %v", err)
			utils.APIResponse(c, http.StatusInternalServerError, false, "Cổng thanh toán đang lỗi, thử lại sau", nil)
			return
		}

		// Lưu phiếu thu pending, webhook báo về mới tính tiền
		receipt := models.PaymentReceipt{
			InvoiceID:  invoice.ID,
			SoPhieu:    sinhSoPhieu(),
			Amount:     input.Amount,
			Method:     models.PayThe,
			GatewayRef: orderNo,
			TrangThai:  "pending",
		}
		if err := config.DB.Create(&receipt).Error; err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Không lưu được phiếu thu", nil)
			return
		}

		utils.APIResponse(c, http.StatusOK, true, "Đã tạo giao dịch, mời khách thanh toán", gin.H{
			"receipt":      receipt,
			"snap_token":   resp.Token,
			"redirect_url": resp.RedirectURL,
		})
	}
}

type vietqrConfirmInput struct {
	InvoiceID uint64  `json:"invoice_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

// ConfirmVietQR thu ngân xác nhận đã nhận được tiền chuyển khoản QR.
// Đây là bước mô phỏng thay cho callback ngân hàng, ràng buộc số tiền vẫn check đủ.
// Route: POST /api/ThanhToan/XacNhanVietQR
func ConfirmVietQR(c *gin.Context) {
	var input vietqrConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Dữ liệu không hợp lệ", err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, input.InvoiceID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy hoá đơn", nil)
		return
	}

	receipt, err := settlePayment(&invoice, input.Amount, models.PayVietQR, "")
	if err != nil {
		if errors.Is(err, models.ErrSoTienKhongHopLe) || errors.Is(err, models.ErrVuotSoTienConLai) {
			utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		log.Printf("Xác nhận VietQR lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Thanh toán thất bại", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Thanh toán thành công", gin.H{
		"receipt":    receipt,
		"trang_thai": invoice.Status(),
		"con_lai":    invoice.Remaining(),
	})
}

// settlePayment cộng tiền vào hoá đơn + ghi phiếu thu trong một transaction
func settlePayment(invoice *models.Invoice, amount float64, method, gatewayRef string) (*models.PaymentReceipt, error) {
	if err := invoice.ApplyPayment(amount); err != nil {
		return nil, err
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(invoice).Update("paid", invoice.Paid).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	receipt := models.PaymentReceipt{
		InvoiceID:  invoice.ID,
		SoPhieu:    sinhSoPhieu(),
		Amount:     amount,
		Method:     method,
		GatewayRef: gatewayRef,
		TrangThai:  "success",
	}
	if err := tx.Create(&receipt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// taoGiaoDichCong tạo giao dịch Snap bên cổng thanh toán cho nhánh quẹt thẻ / ví
func taoGiaoDichCong(invoice models.Invoice, amount float64) (*snap.Response, string, error) {
	var s snap.Client
	s.New(os.Getenv("MIDTRANS_SERVER_KEY"), midtrans.Sandbox)

	orderNo := fmt.Sprintf("%s-%d", invoice.SoHoaDon, time.Now().Unix())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderNo,
			GrossAmt: int64(amount), // Cổng yêu cầu int64
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: invoice.Patient.HoTen,
			Phone: invoice.Patient.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    invoice.SoHoaDon,
				Name:  "Vien phi " + invoice.SoHoaDon,
				Price: int64(amount),
				Qty:   1,
			},
		},
	}

	resp, errSnap := s.CreateTransaction(req)
	if errSnap != nil {
		return nil, "", fmt.Errorf("cổng thanh toán: %s", errSnap.GetMessage())
	}
	return resp, orderNo, nil
}

// GatewayNotification là body webhook cổng thanh toán gửi về.
// Bên đó gửi cả chục field nhưng mình chỉ cần chừng này.
type GatewayNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
}

// HandleGatewayNotification nhận webhook settle từ cổng thanh toán (nhánh thẻ/ví)
// Route: POST /api/ThanhToan/Notification
func HandleGatewayNotification(c *gin.Context) {
	var notification GatewayNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "JSON không hợp lệ", nil)
		return
	}

	// Map trạng thái bên cổng về trạng thái phiếu thu
	var trangThai string
	switch notification.TransactionStatus {
	case "capture":
		if notification.FraudStatus == "accept" {
			trangThai = "success"
		} else {
			trangThai = "pending" // Ngân hàng còn đang soi
		}
	case "settlement":
		trangThai = "success"
	case "deny", "cancel", "expire":
		trangThai = "failed"
	default:
		trangThai = "pending"
	}

	log.Printf("[Webhook] Cổng thanh toán báo về - OrderID: %s, Status: %s -> %s",
		notification.OrderID, notification.TransactionStatus, trangThai)

	var receipt models.PaymentReceipt
	if err := config.DB.Where("gateway_ref = ?", notification.OrderID).First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.APIResponse(c, http.StatusNotFound, false, "Không tìm thấy phiếu thu", nil)
			return
		}
		utils.APIResponse(c, http.StatusInternalServerError, false, "Lỗi database", nil)
		return
	}

	if receipt.TrangThai != "pending" {
		// Webhook bắn trùng, đã xử lý rồi thì thôi
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if trangThai == "success" {
		var invoice models.Invoice
		if err := config.DB.First(&invoice, receipt.InvoiceID).Error; err == nil {
			if err := invoice.ApplyPayment(receipt.Amount); err != nil {
				// Hoá đơn đã được thu đường khác trong lúc chờ webhook
				log.Printf("[Webhook] Không cộng được tiền phiếu %s: %v", receipt.SoPhieu, err)
				trangThai = "failed"
			} else {
				config.DB.Model(&invoice).Update("paid", invoice.Paid)
			}
		}
	}

	if trangThai != "pending" {
		config.DB.Model(&receipt).Update("trang_thai", trangThai)
	}

	// Trả OK để bên cổng biết mình đã nhận
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
