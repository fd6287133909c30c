package policy

import "innovation-hub/internal/model"

// Roster 团队成员索引，由调用方加载的 TeamMember 行构建
type Roster struct {
	teams map[string]map[string]model.MemberRole
}

func NewRoster(members ...model.TeamMember) *Roster {
	r := &Roster{teams: make(map[string]map[string]model.MemberRole)}
	for _, m := range members {
		r.Add(m)
	}
	return r
}

// Add 追加一条成员记录，缺少团队或用户的记录被忽略
func (r *Roster) Add(m model.TeamMember) {
	if m.TeamID == "" || m.UserID == "" {
		return
	}
	users, ok := r.teams[m.TeamID]
	if !ok {
		users = make(map[string]model.MemberRole)
		r.teams[m.TeamID] = users
	}
	users[m.UserID] = m.Role
}

func (r *Roster) role(userID, teamID string) (model.MemberRole, bool) {
	if r == nil || userID == "" || teamID == "" {
		return "", false
	}
	role, ok := r.teams[teamID][userID]
	return role, ok
}

// IsTeamMember 存在 team_id 与 user_id 均匹配的成员记录
func (r *Roster) IsTeamMember(u *model.User, team *model.Team) bool {
	if u == nil || team == nil {
		return false
	}
	return r.isMember(u.ID, team.ID)
}

func (r *Roster) isMember(userID, teamID string) bool {
	_, ok := r.role(userID, teamID)
	return ok
}

// IsTeamLeader 用户是否为该团队的队长
func (r *Roster) IsTeamLeader(u *model.User, team *model.Team) bool {
	if u == nil || team == nil {
		return false
	}
	role, ok := r.role(u.ID, team.ID)
	return ok && role == model.MemberLeader
}

// CanAccessProject 管理员或项目所属团队的成员可以查看项目
func (r *Roster) CanAccessProject(u *model.User, p *model.Project) bool {
	if u == nil || p == nil {
		return false
	}
	return u.IsAdmin() || r.isMember(u.ID, p.TeamID)
}

// CanSubmitProject 可访问且所属事件仍处于 open 状态；事件缺失视为不可提交
func (r *Roster) CanSubmitProject(u *model.User, p *model.Project, e *model.Event) bool {
	if p == nil || e == nil || e.Status != model.EventOpen {
		return false
	}
	if p.EventID != "" && p.EventID != e.ID {
		return false
	}
	return r.CanAccessProject(u, p)
}

// CanManageTeam 队长或管理员可以维护团队成员
func (r *Roster) CanManageTeam(u *model.User, team *model.Team) bool {
	if u == nil || team == nil {
		return false
	}
	return u.IsAdmin() || r.IsTeamLeader(u, team)
}

// CanJoinTeam 同一事件下用户至多加入一个团队
func (r *Roster) CanJoinTeam(u *model.User, team *model.Team, eventTeams []model.Team) bool {
	if u == nil || team == nil || team.EventID == "" {
		return false
	}
	for i := range eventTeams {
		if eventTeams[i].EventID != team.EventID {
			continue
		}
		if r.isMember(u.ID, eventTeams[i].ID) {
			return false
		}
	}
	return !r.isMember(u.ID, team.ID)
}

// VisibleProjects 管理员可见全部，普通用户仅可见所在团队的项目；保持原有顺序
func (r *Roster) VisibleProjects(u *model.User, projects []model.Project) []model.Project {
	visible := make([]model.Project, 0, len(projects))
	if u == nil {
		return visible
	}
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, dup := seen[p.ID]; dup && p.ID != "" {
			continue
		}
		if u.IsAdmin() || r.isMember(u.ID, p.TeamID) {
			visible = append(visible, p)
			seen[p.ID] = struct{}{}
		}
	}
	return visible
}
