package policy

import "innovation-hub/internal/model"

const (
	textSubmit      = "Submit results"
	textUpdate      = "Update results"
	adminSuffix     = " (Admin)"
	messageMember   = "Project submitted successfully"
	messageAdmin    = "Admin submitted the project successfully"
	noticeAdminActs = "You can submit or update this project's results as an admin"
)

// Label 提交按钮的展示信息。AdminActing 表示管理员以非成员身份代团队提交，
// 写入内容相同，但需要单独标记并记入审计日志
type Label struct {
	Text        string `json:"text"`
	AdminActing bool   `json:"is_admin_acting"`
	Submitted   bool   `json:"submitted"`
	Notice      string `json:"notice,omitempty"`
}

// SuccessMessage 提交成功后的提示语
func (l Label) SuccessMessage() string {
	if l.AdminActing {
		return messageAdmin
	}
	return messageMember
}

// IsAdminActing 管理员且不是项目所属团队的成员
func (r *Roster) IsAdminActing(u *model.User, p *model.Project) bool {
	if !u.IsAdmin() || p == nil {
		return false
	}
	return !r.isMember(u.ID, p.TeamID)
}

func (r *Roster) SubmissionLabel(u *model.User, p *model.Project) Label {
	l := Label{
		Submitted:   p.Submitted(),
		AdminActing: r.IsAdminActing(u, p),
	}
	l.Text = textSubmit
	if l.Submitted {
		l.Text = textUpdate
	}
	if l.AdminActing {
		l.Text += adminSuffix
		l.Notice = noticeAdminActs
	}
	return l
}
