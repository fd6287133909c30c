package model

import (
	"time"
)

// Model 所有带创建时间的实体共用的字段，ID 为不透明的稳定字符串
type Model struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Model) CreateTime() int64 {
	return m.CreatedAt.UnixMilli()
}

// Str 返回字符串指针，便于构造可空字段
func Str(s string) *string {
	return &s
}

// Deref 读取可空字符串，nil 视为空串
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable 空串视为清空
func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
