package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword băm mật khẩu trước khi lưu DB
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword so mật khẩu người dùng nhập với hash trong DB
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
