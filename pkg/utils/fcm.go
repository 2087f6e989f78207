package utils

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM khởi tạo kết nối Firebase để đẩy thông báo cho app bác sĩ / app bệnh nhân.
// Không có file credential thì bỏ qua, server vẫn chạy bình thường (môi trường dev).
func InitFCM() {
	credPath := os.Getenv("FIREBASE_CREDENTIALS")
	if credPath == "" {
		credPath = "firebase-service-account.json"
	}

	if _, err := os.Stat(credPath); err != nil {
		log.Println("Không thấy file credential Firebase, tắt tính năng thông báo đẩy")
		return
	}

	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("Lỗi khởi tạo Firebase: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Lỗi lấy messaging client: %v", err)
		return
	}

	fcmClient = client
	log.Println("Firebase Cloud Messaging sẵn sàng")
}

// SendNotification đẩy thông báo tới một thiết bị theo FCM token.
// data mang thêm ngữ cảnh, ví dụ ma_tiep_nhan để app mở đúng màn hình.
func SendNotification(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := fcmClient.Send(context.Background(), message)
	if err != nil {
		log.Printf("Gửi thông báo lỗi: %s", err)
		return err
	}
	return nil
}
