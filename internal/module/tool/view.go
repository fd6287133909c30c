package tool

import (
	"innovation-hub/internal/model"
	"innovation-hub/internal/policy"
)

// Progress 展示用进度，Percent 为取整后的百分比
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

func NewProgress(done, total int) Progress {
	return Progress{Done: done, Total: total, Percent: policy.Percent(done, total)}
}

// ProjectView 项目列表项与详情共用的视图
type ProjectView struct {
	model.Project
	TeamName     string       `json:"team_name"`
	EventName    string       `json:"event_name"`
	CanAccess    bool         `json:"can_access"`
	CanSubmit    bool         `json:"can_submit"`
	LinkProgress Progress     `json:"link_progress"`
	Label        policy.Label `json:"label"`
}

// NewProjectView team 与 event 可以为 nil（悬空引用），此时名称为空且不可提交
func NewProjectView(r *policy.Roster, u *model.User, p *model.Project, team *model.Team, event *model.Event) ProjectView {
	v := ProjectView{
		Project:   *p,
		CanAccess: r.CanAccessProject(u, p),
		CanSubmit: r.CanSubmitProject(u, p, event),
		Label:     r.SubmissionLabel(u, p),
	}
	if team != nil {
		v.TeamName = team.Name
	}
	if event != nil {
		v.EventName = event.Name
	}
	v.LinkProgress = NewProgress(policy.LinkProgress(p))
	return v
}

// Index 按 ID 建立查找表
func Index[T any](items []T, key func(*T) string) map[string]*T {
	m := make(map[string]*T, len(items))
	for i := range items {
		m[key(&items[i])] = &items[i]
	}
	return m
}
