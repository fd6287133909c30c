package model

import "time"

type Judge struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID string `gorm:"type:varchar(36);index" json:"event_id"`
	UserID  string `gorm:"type:varchar(36);index" json:"user_id"`
}

type JudgeScore struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string     `gorm:"type:varchar(36);index" json:"project_id"`
	JudgeID     string     `gorm:"type:varchar(36);index" json:"judge_id"`
	SubmittedAt *time.Time `json:"submitted_at"`
	TotalScore  float64    `gorm:"default:0;not null" json:"total_score"`
}

type CriteriaScore struct {
	ID           string   `gorm:"type:varchar(36);primaryKey" json:"id"`
	JudgeScoreID string   `gorm:"type:varchar(36);index" json:"judge_score_id"`
	CriteriaID   string   `gorm:"type:varchar(36);index" json:"criteria_id"`
	Score        *float64 `json:"score"`
}
