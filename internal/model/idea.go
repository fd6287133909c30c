package model

type Idea struct {
	Model
	EventID     string       `gorm:"type:varchar(36);not null;index" json:"event_id"`
	UserID      string       `gorm:"type:varchar(36);not null;index" json:"user_id"` // 作者
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Status      ReviewStatus `gorm:"type:varchar(10);default:'pending';not null" json:"status"`
}
