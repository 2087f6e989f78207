package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis giữ bản nháp tiếp nhận của từng nhân viên quầy (thay cho localStorage
// của bản web cũ). Mất Redis thì chỉ mất bản nháp, dữ liệu chính vẫn ở MySQL.
var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatalf("Không kết nối được Redis: %v", err)
	}

	log.Println("Kết nối Redis thành công")
}
