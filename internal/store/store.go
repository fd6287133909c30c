// Package store 定义实体存储的统一接口。
//
// 读操作返回当前快照的副本，按插入顺序排列；写操作对单次调用是全有或全无的，
// 失败时以 *WriteError 返回且不留下部分修改。
package store

import (
	"context"

	"innovation-hub/internal/model"
)

type Users interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	AddUser(ctx context.Context, u model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) (*model.User, error)
}

type Events interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	AddEvent(ctx context.Context, e model.Event) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Teams 团队与成员。eventID 为空时列出全部团队
type Teams interface {
	ListTeams(ctx context.Context, eventID string) ([]model.Team, error)
	GetTeam(ctx context.Context, id string) (*model.Team, error)
	AddTeam(ctx context.Context, t model.Team) (*model.Team, error)
	// AddTeamWithLeader 在一次写入中创建团队并把 leaderID 设为队长
	AddTeamWithLeader(ctx context.Context, t model.Team, leaderID string) (*model.Team, error)
	SetTeamStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Team, error)

	ListTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error)
	ListMemberships(ctx context.Context, userID string) ([]model.TeamMember, error)
	// AddTeamMember 同一事件下用户已在其他团队时返回 ErrConflict（原因 model.ErrTeamPerEvent）
	AddTeamMember(ctx context.Context, m model.TeamMember) (*model.TeamMember, error)
}

type Ideas interface {
	ListIdeas(ctx context.Context, eventID string) ([]model.Idea, error)
	GetIdea(ctx context.Context, id string) (*model.Idea, error)
	AddIdea(ctx context.Context, i model.Idea) (*model.Idea, error)
	SetIdeaStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Idea, error)
}

// Projects eventID 为空时列出全部项目
type Projects interface {
	ListProjects(ctx context.Context, eventID string) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	AddProject(ctx context.Context, p model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error)
}

type Judging interface {
	ListCriteria(ctx context.Context, eventID string) ([]model.Criteria, error)
	AddCriteria(ctx context.Context, c model.Criteria) (*model.Criteria, error)
	ListJudges(ctx context.Context, eventID string) ([]model.Judge, error)
	ListJudgeScores(ctx context.Context, projectID string) ([]model.JudgeScore, error)
}

type Store interface {
	Users
	Events
	Teams
	Ideas
	Projects
	Judging
}
