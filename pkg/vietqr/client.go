// Package vietqr gọi dịch vụ sinh ảnh QR chuyển khoản (img.vietqr.io).
// Dịch vụ này chỉ là nơi vẽ ảnh QR, việc xác nhận tiền về vẫn do thu ngân bấm tay.
package vietqr

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	httpClient *resty.Client
	bankCode   string // Mã ngân hàng nhận tiền, ví dụ "970436" (VCB)
	accountNo  string
}

func NewClient() *Client {
	baseURL := os.Getenv("VIETQR_BASE_URL")
	if baseURL == "" {
		baseURL = "https://img.vietqr.io"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		httpClient: client,
		bankCode:   getEnv("VIETQR_BANK_CODE", "970436"),
		accountNo:  getEnv("VIETQR_ACCOUNT_NO", "0000000000"),
	}
}

// ImageURL trả về link ảnh QR cho một phiếu thu, frontend chỉ việc render <img>.
func (c *Client) ImageURL(amount float64, memo string) string {
	return fmt.Sprintf("%s/image/%s-%s-compact2.png?amount=%.0f&addInfo=%s",
		c.httpClient.BaseURL, c.bankCode, c.accountNo, amount, url.QueryEscape(memo))
}

// FetchImage tải ảnh QR về (dùng khi cần in phiếu kèm QR tại quầy).
func (c *Client) FetchImage(amount float64, memo string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetQueryParam("amount", fmt.Sprintf("%.0f", amount)).
		SetQueryParam("addInfo", memo).
		Get(fmt.Sprintf("/image/%s-%s-compact2.png", c.bankCode, c.accountNo))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dịch vụ VietQR trả về status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
