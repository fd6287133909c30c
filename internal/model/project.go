package model

import "time"

type Project struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID       string     `gorm:"type:varchar(36);not null;index" json:"event_id"`
	TeamID        string     `gorm:"type:varchar(36);not null;index" json:"team_id"`
	IdeaID        string     `gorm:"type:varchar(36)" json:"idea_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`                         // 答辩时间
	CodeLink      *string    `gorm:"type:varchar(512)" json:"code_link"`  // 源码链接
	SlideLink     *string    `gorm:"type:varchar(512)" json:"slide_link"` // 幻灯片链接
	DemoLink      *string    `gorm:"type:varchar(512)" json:"demo_link"`  // 演示链接
	SubmittedAt   *time.Time `json:"submitted_at"`                           // 非空即表示已提交

	CreatedAt time.Time `json:"-"`
}

func (p *Project) Submitted() bool {
	return p != nil && p.SubmittedAt != nil
}

// Links 依次返回源码、幻灯片、演示三个链接
func (p *Project) Links() [3]*string {
	return [3]*string{p.CodeLink, p.SlideLink, p.DemoLink}
}

// ProjectPatch 项目的部分更新；链接传空串表示清空
type ProjectPatch struct {
	ScheduledTime *time.Time `json:"scheduled_time"`
	CodeLink      *string    `json:"code_link"`
	SlideLink     *string    `json:"slide_link"`
	DemoLink      *string    `json:"demo_link"`
	SubmittedAt   *time.Time `json:"submitted_at"`
}

func (p ProjectPatch) Apply(pr *Project) {
	if p.ScheduledTime != nil {
		pr.ScheduledTime = *p.ScheduledTime
	}
	if p.CodeLink != nil {
		pr.CodeLink = nullable(p.CodeLink)
	}
	if p.SlideLink != nil {
		pr.SlideLink = nullable(p.SlideLink)
	}
	if p.DemoLink != nil {
		pr.DemoLink = nullable(p.DemoLink)
	}
	if p.SubmittedAt != nil {
		t := *p.SubmittedAt
		pr.SubmittedAt = &t
	}
}
