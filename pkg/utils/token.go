package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "bi_mat_quay_tiep_nhan" // Fallback khi quên set .env
	}
	return []byte(secret)
}

// GenerateToken tạo JWT chứa User ID, Role và chi nhánh đang đăng nhập
func GenerateToken(userID uint64, roleID uint, branchID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"role_id":   roleID,
		"branch_id": branchID,
		"exp":       time.Now().Add(time.Hour * 12).Unix(), // Hết ca là hết hạn
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken kiểm tra token còn hợp lệ không
func ValidateToken(encodedToken string) (*jwt.Token, error) {
	return jwt.Parse(encodedToken, func(token *jwt.Token) (interface{}, error) {
		// Bắt buộc thuật toán HMAC, chặn kiểu alg=none
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
}
