package vietqr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	t.Setenv("VIETQR_BASE_URL", "https://img.vietqr.io")
	t.Setenv("VIETQR_BANK_CODE", "970436")
	t.Setenv("VIETQR_ACCOUNT_NO", "1234567890")

	c := NewClient()
	got := c.ImageURL(220000, "HD-123 BN-ABC")

	assert.Equal(t,
		"https://img.vietqr.io/image/970436-1234567890-compact2.png?amount=220000&addInfo=HD-123+BN-ABC",
		got)
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/image/970436-1234567890-compact2.png", r.URL.Path)
		assert.Equal(t, "120000", r.URL.Query().Get("amount"))
		assert.Equal(t, "HD-1", r.URL.Query().Get("addInfo"))
		w.Write([]byte("anh-qr-gia"))
	}))
	defer srv.Close()

	t.Setenv("VIETQR_BASE_URL", srv.URL)
	t.Setenv("VIETQR_BANK_CODE", "970436")
	t.Setenv("VIETQR_ACCOUNT_NO", "1234567890")

	body, err := NewClient().FetchImage(120000, "HD-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("anh-qr-gia"), body)
}

func TestFetchImageLoi(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	t.Setenv("VIETQR_BASE_URL", srv.URL)

	_, err := NewClient().FetchImage(0, "")
	assert.Error(t, err)
}
