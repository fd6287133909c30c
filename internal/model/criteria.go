package model

import "time"

const (
	DefaultCriteriaWeight   = 1
	DefaultCriteriaMaxScore = 10
)

// Criteria 评分维度，仅用于展示
type Criteria struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID     string  `gorm:"type:varchar(36);index" json:"event_id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Weight      float64 `gorm:"default:1;not null" json:"weight"`
	MaxScore    float64 `gorm:"default:10;not null" json:"max_score"`

	CreatedAt time.Time `json:"-"`
}

// Normalize 填充默认值并校验取值范围；nil 表示使用默认值
func (c *Criteria) Normalize(weight, maxScore *float64) error {
	c.Weight = DefaultCriteriaWeight
	c.MaxScore = DefaultCriteriaMaxScore
	if weight != nil {
		c.Weight = *weight
	}
	if maxScore != nil {
		c.MaxScore = *maxScore
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Weight < 0 || c.MaxScore <= 0 {
		return ErrCriteria
	}
	return nil
}
