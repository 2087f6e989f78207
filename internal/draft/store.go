package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store lưu bản nháp vào Redis, mỗi nhân viên quầy một key.
// Ghi kiểu SET thường, ai ghi sau thắng (mở hai tab thì tab sau đè tab trước,
// giống hệt localStorage của bản web cũ).
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{
		rdb: rdb,
		ttl: 7 * 24 * time.Hour, // Nháp để quá một tuần coi như bỏ
	}
}

func (s *Store) key(clerkID uint64) string {
	return fmt.Sprintf("tiepnhan:draft:%d", clerkID)
}

// Load đọc bản nháp của một nhân viên. Không có key hoặc JSON hỏng
// thì trả bản nháp rỗng, không báo lỗi — mở màn hình lúc nào cũng phải vào được.
func (s *Store) Load(ctx context.Context, clerkID uint64) (Draft, error) {
	raw, err := s.rdb.Get(ctx, s.key(clerkID)).Bytes()
	if err == redis.Nil {
		return NewDraft(), nil
	}
	if err != nil {
		return NewDraft(), err
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		// Shape cũ không đọc được thì làm lại từ đầu, không đẩy rác xuống form
		return NewDraft(), nil
	}
	if d.ChiDinh == nil {
		d.ChiDinh = []ChiDinhItem{}
	}
	return d, nil
}

// Save ghi đè nguyên bản nháp, gọi mỗi lần form thay đổi
func (s *Store) Save(ctx context.Context, clerkID uint64, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(clerkID), raw, s.ttl).Err()
}

// Reset xoá bản nháp (sau khi submit thành công hoặc bấm làm mới)
func (s *Store) Reset(ctx context.Context, clerkID uint64) error {
	return s.rdb.Del(ctx, s.key(clerkID)).Err()
}
