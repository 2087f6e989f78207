package main

import (
	"log"
	"os"

	"clinic-backend/internal/config"
	"clinic-backend/internal/routes"
	"clinic-backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không thấy file .env, dùng biến môi trường hệ thống")
	}

	// 2. Kết nối MySQL + Redis
	config.ConnectDB()
	config.ConnectRedis()

	// 3. Firebase cho thông báo đẩy (không có credential thì tự tắt)
	utils.InitFCM()

	// 4. Router
	r := gin.Default()

	// CORS cho frontend quầy tiếp nhận
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r)

	// Health check
	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	// 5. Chạy
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server chạy ở port " + port)
	r.Run(":" + port)
}
