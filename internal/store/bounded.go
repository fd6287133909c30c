package store

import (
	"context"
	"time"

	"innovation-hub/internal/global/metrics"
	"innovation-hub/internal/model"
)

// Bounded 为每次存储调用附加超时，并记录调用耗时。timeout <= 0 时只记录指标
func Bounded(s Store, timeout time.Duration) Store {
	return &bounded{next: s, timeout: timeout}
}

type bounded struct {
	next    Store
	timeout time.Duration
}

func (b *bounded) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, b.timeout)
}

func read[T any](b *bounded, ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	ctx, cancel := b.ctx(ctx)
	defer cancel()

	v, err := fn(ctx)
	metrics.ObserveStore(op, start, err)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// write 与 read 相同，但错误统一包装为 *WriteError，便于上层区分写失败
func write[T any](b *bounded, ctx context.Context, op, id string, fn func(context.Context) (T, error)) (T, error) {
	v, err := read(b, ctx, op, fn)
	if err != nil {
		return v, Fail(op, id, err)
	}
	return v, nil
}

func (b *bounded) GetUser(ctx context.Context, id string) (*model.User, error) {
	return read(b, ctx, "get_user", func(ctx context.Context) (*model.User, error) {
		return b.next.GetUser(ctx, id)
	})
}

func (b *bounded) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return read(b, ctx, "get_user_by_email", func(ctx context.Context) (*model.User, error) {
		return b.next.GetUserByEmail(ctx, email)
	})
}

func (b *bounded) ListUsers(ctx context.Context) ([]model.User, error) {
	return read(b, ctx, "list_users", b.next.ListUsers)
}

func (b *bounded) AddUser(ctx context.Context, u model.User) (*model.User, error) {
	return write(b, ctx, "add_user", u.ID, func(ctx context.Context) (*model.User, error) {
		return b.next.AddUser(ctx, u)
	})
}

func (b *bounded) UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) (*model.User, error) {
	return write(b, ctx, "update_user", id, func(ctx context.Context) (*model.User, error) {
		return b.next.UpdateUser(ctx, id, patch)
	})
}

func (b *bounded) ListEvents(ctx context.Context) ([]model.Event, error) {
	return read(b, ctx, "list_events", b.next.ListEvents)
}

func (b *bounded) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return read(b, ctx, "get_event", func(ctx context.Context) (*model.Event, error) {
		return b.next.GetEvent(ctx, id)
	})
}

func (b *bounded) AddEvent(ctx context.Context, e model.Event) (*model.Event, error) {
	return write(b, ctx, "add_event", e.ID, func(ctx context.Context) (*model.Event, error) {
		return b.next.AddEvent(ctx, e)
	})
}

func (b *bounded) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	return write(b, ctx, "update_event", id, func(ctx context.Context) (*model.Event, error) {
		return b.next.UpdateEvent(ctx, id, patch)
	})
}

func (b *bounded) DeleteEvent(ctx context.Context, id string) error {
	_, err := write(b, ctx, "delete_event", id, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.next.DeleteEvent(ctx, id)
	})
	return err
}

func (b *bounded) ListTeams(ctx context.Context, eventID string) ([]model.Team, error) {
	return read(b, ctx, "list_teams", func(ctx context.Context) ([]model.Team, error) {
		return b.next.ListTeams(ctx, eventID)
	})
}

func (b *bounded) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	return read(b, ctx, "get_team", func(ctx context.Context) (*model.Team, error) {
		return b.next.GetTeam(ctx, id)
	})
}

func (b *bounded) AddTeam(ctx context.Context, t model.Team) (*model.Team, error) {
	return write(b, ctx, "add_team", t.ID, func(ctx context.Context) (*model.Team, error) {
		return b.next.AddTeam(ctx, t)
	})
}

func (b *bounded) AddTeamWithLeader(ctx context.Context, t model.Team, leaderID string) (*model.Team, error) {
	return write(b, ctx, "add_team_with_leader", t.ID, func(ctx context.Context) (*model.Team, error) {
		return b.next.AddTeamWithLeader(ctx, t, leaderID)
	})
}

func (b *bounded) SetTeamStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Team, error) {
	return write(b, ctx, "set_team_status", id, func(ctx context.Context) (*model.Team, error) {
		return b.next.SetTeamStatus(ctx, id, status)
	})
}

func (b *bounded) ListTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	return read(b, ctx, "list_team_members", func(ctx context.Context) ([]model.TeamMember, error) {
		return b.next.ListTeamMembers(ctx, teamID)
	})
}

func (b *bounded) ListMemberships(ctx context.Context, userID string) ([]model.TeamMember, error) {
	return read(b, ctx, "list_memberships", func(ctx context.Context) ([]model.TeamMember, error) {
		return b.next.ListMemberships(ctx, userID)
	})
}

func (b *bounded) AddTeamMember(ctx context.Context, m model.TeamMember) (*model.TeamMember, error) {
	return write(b, ctx, "add_team_member", m.TeamID, func(ctx context.Context) (*model.TeamMember, error) {
		return b.next.AddTeamMember(ctx, m)
	})
}

func (b *bounded) ListIdeas(ctx context.Context, eventID string) ([]model.Idea, error) {
	return read(b, ctx, "list_ideas", func(ctx context.Context) ([]model.Idea, error) {
		return b.next.ListIdeas(ctx, eventID)
	})
}

func (b *bounded) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	return read(b, ctx, "get_idea", func(ctx context.Context) (*model.Idea, error) {
		return b.next.GetIdea(ctx, id)
	})
}

func (b *bounded) AddIdea(ctx context.Context, i model.Idea) (*model.Idea, error) {
	return write(b, ctx, "add_idea", i.ID, func(ctx context.Context) (*model.Idea, error) {
		return b.next.AddIdea(ctx, i)
	})
}

func (b *bounded) SetIdeaStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Idea, error) {
	return write(b, ctx, "set_idea_status", id, func(ctx context.Context) (*model.Idea, error) {
		return b.next.SetIdeaStatus(ctx, id, status)
	})
}

func (b *bounded) ListProjects(ctx context.Context, eventID string) ([]model.Project, error) {
	return read(b, ctx, "list_projects", func(ctx context.Context) ([]model.Project, error) {
		return b.next.ListProjects(ctx, eventID)
	})
}

func (b *bounded) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return read(b, ctx, "get_project", func(ctx context.Context) (*model.Project, error) {
		return b.next.GetProject(ctx, id)
	})
}

func (b *bounded) AddProject(ctx context.Context, p model.Project) (*model.Project, error) {
	return write(b, ctx, "add_project", p.ID, func(ctx context.Context) (*model.Project, error) {
		return b.next.AddProject(ctx, p)
	})
}

func (b *bounded) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	return write(b, ctx, "update_project", id, func(ctx context.Context) (*model.Project, error) {
		return b.next.UpdateProject(ctx, id, patch)
	})
}

func (b *bounded) ListCriteria(ctx context.Context, eventID string) ([]model.Criteria, error) {
	return read(b, ctx, "list_criteria", func(ctx context.Context) ([]model.Criteria, error) {
		return b.next.ListCriteria(ctx, eventID)
	})
}

func (b *bounded) AddCriteria(ctx context.Context, c model.Criteria) (*model.Criteria, error) {
	return write(b, ctx, "add_criteria", c.ID, func(ctx context.Context) (*model.Criteria, error) {
		return b.next.AddCriteria(ctx, c)
	})
}

func (b *bounded) ListJudges(ctx context.Context, eventID string) ([]model.Judge, error) {
	return read(b, ctx, "list_judges", func(ctx context.Context) ([]model.Judge, error) {
		return b.next.ListJudges(ctx, eventID)
	})
}

func (b *bounded) ListJudgeScores(ctx context.Context, projectID string) ([]model.JudgeScore, error) {
	return read(b, ctx, "list_judge_scores", func(ctx context.Context) ([]model.JudgeScore, error) {
		return b.next.ListJudgeScores(ctx, projectID)
	})
}
