package utils

import (
	"github.com/gin-gonic/gin"
)

// Chuẩn response chung cho toàn bộ API, frontend chỉ cần đọc success + message
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"` // omitempty: null thì khỏi trả về
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}
