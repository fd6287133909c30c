package model

import "time"

type EventStatus string

const (
	EventDraft  EventStatus = "draft"
	EventOpen   EventStatus = "open"
	EventClosed EventStatus = "closed"
)

func (s EventStatus) Valid() bool {
	return s.rank() >= 0
}

// rank 事件状态在生命周期中的位置，只能向前推进
func (s EventStatus) rank() int {
	switch s {
	case EventDraft:
		return 0
	case EventOpen:
		return 1
	case EventClosed:
		return 2
	default:
		return -1
	}
}

// Before 判断 s 是否位于 other 之前
func (s EventStatus) Before(other EventStatus) bool {
	return s.Valid() && other.Valid() && s.rank() < other.rank()
}

// CanMoveTo 只能前进，原地不动也算合法
func (s EventStatus) CanMoveTo(to EventStatus) bool {
	return s.Valid() && to.Valid() && (s == to || s.Before(to))
}

type Event struct {
	Model
	Name        string      `gorm:"type:varchar(200);not null" json:"name"`
	Slogan      *string     `gorm:"type:varchar(255)" json:"slogan"`
	Description *string     `gorm:"type:text" json:"description"`
	ImageURL    *string     `gorm:"type:varchar(512)" json:"image_url"`
	StartTime   time.Time   `gorm:"not null" json:"start_time"`
	EndTime     time.Time   `gorm:"not null" json:"end_time"`
	Status      EventStatus `gorm:"type:varchar(10);default:'draft';not null;index" json:"status"`
	CreatedBy   *string     `gorm:"type:varchar(36)" json:"created_by"`
}

// EventPatch 事件的部分更新，nil 字段保持原值
type EventPatch struct {
	Name        *string      `json:"name"`
	Slogan      *string      `json:"slogan"`
	Description *string      `json:"description"`
	ImageURL    *string      `json:"image_url"`
	StartTime   *time.Time   `json:"start_time"`
	EndTime     *time.Time   `json:"end_time"`
	Status      *EventStatus `json:"status"`
}

func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Slogan != nil {
		e.Slogan = nullable(p.Slogan)
	}
	if p.Description != nil {
		e.Description = nullable(p.Description)
	}
	if p.ImageURL != nil {
		e.ImageURL = nullable(p.ImageURL)
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}

// Validate 检查时间区间与状态取值
func (e *Event) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if !e.StartTime.Before(e.EndTime) {
		return ErrTimeRange
	}
	if !e.Status.Valid() {
		return ErrStatus
	}
	return nil
}
