package model

import "time"

// ReviewStatus 团队与创意共用的审核状态
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

type Team struct {
	Model
	EventID string       `gorm:"type:varchar(36);not null;index" json:"event_id"`
	Name    string       `gorm:"type:varchar(100);not null" json:"name"`
	Status  ReviewStatus `gorm:"type:varchar(10);default:'pending';not null" json:"status"`
}

type MemberRole string

const (
	MemberLeader MemberRole = "leader"
	MemberMember MemberRole = "member"
)

func (r MemberRole) Valid() bool {
	return r == MemberLeader || r == MemberMember
}

// TeamMember 同一用户在同一团队中至多出现一次
type TeamMember struct {
	ID     string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TeamID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_team_user" json:"team_id"`
	UserID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_team_user;index" json:"user_id"`
	Role   MemberRole `gorm:"type:varchar(10);default:'member';not null" json:"role"`

	CreatedAt time.Time `json:"-"` // 仅用于保持插入顺序
}
