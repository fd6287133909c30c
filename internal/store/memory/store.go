// Package memory 进程内的实体存储，开发模式与测试使用。
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

// Store 以插入顺序保存各集合。所有写操作在同一把锁内完成校验与修改，
// 读操作返回深拷贝
type Store struct {
	mu sync.RWMutex

	users       []model.User
	events      []model.Event
	teams       []model.Team
	members     []model.TeamMember
	ideas       []model.Idea
	projects    []model.Project
	criteria    []model.Criteria
	judges      []model.Judge
	judgeScores []model.JudgeScore

	fault error
	now   func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{now: time.Now}
}

// SetWriteFault 使后续写操作以 err 失败，传 nil 恢复正常
func (s *Store) SetWriteFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

// begin 获取写锁并检查上下文与注入的故障，返回的函数用于解锁
func (s *Store) begin(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.fault != nil {
		s.mu.Unlock()
		return nil, s.fault
	}
	return s.mu.Unlock, nil
}

func (s *Store) rlock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	return s.mu.RUnlock, nil
}

func (s *Store) stamp(t *time.Time) {
	if t.IsZero() {
		*t = s.now()
	}
}

func get[T any](s *Store, ctx context.Context, src *[]T, match func(*T) bool, clone func(T) T) (*T, error) {
	unlock, err := s.rlock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	i := find(*src, match)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	v := clone((*src)[i])
	return &v, nil
}

func list[T any](s *Store, ctx context.Context, src *[]T, keep func(*T) bool, clone func(T) T) ([]T, error) {
	unlock, err := s.rlock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return filter(*src, keep, clone), nil
}

func byID[T any](id string, key func(*T) string) func(*T) bool {
	return func(v *T) bool { return key(v) == id }
}

// ---- users ----

func userKey(u *model.User) string { return u.ID }

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	return get(s, ctx, &s.users, byID(id, userKey), cloneUser)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return get(s, ctx, &s.users, func(u *model.User) bool {
		return strings.EqualFold(u.Email, email)
	}, cloneUser)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	return list(s, ctx, &s.users, nil, cloneUser)
}

func (s *Store) AddUser(ctx context.Context, u model.User) (*model.User, error) {
	const op = "add_user"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, u.ID, err)
	}
	defer unlock()

	u = cloneUser(u)
	if err := store.PrepareUser(&u); err != nil {
		return nil, store.Fail(op, u.ID, err)
	}
	if find(s.users, func(x *model.User) bool {
		return x.ID == u.ID || strings.EqualFold(x.Email, u.Email)
	}) >= 0 {
		return nil, store.Fail(op, u.ID, store.ErrConflict)
	}
	s.stamp(&u.CreatedAt)
	s.users = append(s.users, u)
	out := cloneUser(u)
	return &out, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) (*model.User, error) {
	const op = "update_user"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.users, byID(id, userKey))
	if i < 0 {
		return nil, store.Fail(op, id, store.ErrNotFound)
	}
	u := cloneUser(s.users[i])
	patch.Apply(&u)
	s.users[i] = u
	out := cloneUser(u)
	return &out, nil
}

// ---- events ----

func eventKey(e *model.Event) string { return e.ID }

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	return list(s, ctx, &s.events, nil, cloneEvent)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return get(s, ctx, &s.events, byID(id, eventKey), cloneEvent)
}

func (s *Store) AddEvent(ctx context.Context, e model.Event) (*model.Event, error) {
	const op = "add_event"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, e.ID, err)
	}
	defer unlock()

	e = cloneEvent(e)
	if err := store.PrepareEvent(&e); err != nil {
		return nil, store.Fail(op, e.ID, err)
	}
	if find(s.events, byID(e.ID, eventKey)) >= 0 {
		return nil, store.Fail(op, e.ID, store.ErrConflict)
	}
	s.stamp(&e.CreatedAt)
	s.events = append(s.events, e)
	out := cloneEvent(e)
	return &out, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	const op = "update_event"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.events, byID(id, eventKey))
	if i < 0 {
		return nil, store.Fail(op, id, store.ErrNotFound)
	}
	e := cloneEvent(s.events[i])
	if err := store.CheckEventPatch(&e, patch); err != nil {
		return nil, store.Fail(op, id, err)
	}
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return nil, store.Fail(op, id, store.Invalid(err))
	}
	s.events[i] = e
	out := cloneEvent(e)
	return &out, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	const op = "delete_event"
	unlock, err := s.begin(ctx)
	if err != nil {
		return store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.events, byID(id, eventKey))
	if i < 0 {
		return store.Fail(op, id, store.ErrNotFound)
	}
	s.events = append(s.events[:i:i], s.events[i+1:]...)
	return nil
}

// ---- teams ----

func teamKey(t *model.Team) string { return t.ID }

func (s *Store) ListTeams(ctx context.Context, eventID string) ([]model.Team, error) {
	return list(s, ctx, &s.teams, func(t *model.Team) bool {
		return eventID == "" || t.EventID == eventID
	}, same[model.Team])
}

func (s *Store) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	return get(s, ctx, &s.teams, byID(id, teamKey), same[model.Team])
}

func (s *Store) AddTeam(ctx context.Context, t model.Team) (*model.Team, error) {
	const op = "add_team"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	defer unlock()

	if err := store.PrepareTeam(&t); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	if find(s.teams, byID(t.ID, teamKey)) >= 0 {
		return nil, store.Fail(op, t.ID, store.ErrConflict)
	}
	s.stamp(&t.CreatedAt)
	s.teams = append(s.teams, t)
	return &t, nil
}

func (s *Store) AddTeamWithLeader(ctx context.Context, t model.Team, leaderID string) (*model.Team, error) {
	const op = "add_team_with_leader"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	defer unlock()

	if err := store.PrepareTeam(&t); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	leader := model.TeamMember{TeamID: t.ID, UserID: leaderID, Role: model.MemberLeader}
	if err := store.PrepareTeamMember(&leader); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	if find(s.teams, byID(t.ID, teamKey)) >= 0 {
		return nil, store.Fail(op, t.ID, store.ErrConflict)
	}
	if s.inEvent(leaderID, t.EventID) {
		return nil, store.Fail(op, t.ID, store.AlreadyInEvent())
	}
	s.stamp(&t.CreatedAt)
	leader.CreatedAt = t.CreatedAt
	s.teams = append(s.teams, t)
	s.members = append(s.members, leader)
	return &t, nil
}

// inEvent 调用方需持有锁
func (s *Store) inEvent(userID, eventID string) bool {
	for i := range s.members {
		if s.members[i].UserID != userID {
			continue
		}
		j := find(s.teams, byID(s.members[i].TeamID, teamKey))
		if j >= 0 && s.teams[j].EventID == eventID {
			return true
		}
	}
	return false
}

func (s *Store) SetTeamStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Team, error) {
	const op = "set_team_status"
	if !status.Valid() {
		return nil, store.Fail(op, id, store.Invalid(model.ErrStatus))
	}
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.teams, byID(id, teamKey))
	if i < 0 {
		return nil, store.Fail(op, id, store.ErrNotFound)
	}
	s.teams[i].Status = status
	out := s.teams[i]
	return &out, nil
}

func (s *Store) ListTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	return list(s, ctx, &s.members, func(m *model.TeamMember) bool {
		return m.TeamID == teamID
	}, same[model.TeamMember])
}

func (s *Store) ListMemberships(ctx context.Context, userID string) ([]model.TeamMember, error) {
	return list(s, ctx, &s.members, func(m *model.TeamMember) bool {
		return m.UserID == userID
	}, same[model.TeamMember])
}

func (s *Store) AddTeamMember(ctx context.Context, m model.TeamMember) (*model.TeamMember, error) {
	const op = "add_team_member"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, m.TeamID, err)
	}
	defer unlock()

	if err := store.PrepareTeamMember(&m); err != nil {
		return nil, store.Fail(op, m.TeamID, err)
	}
	ti := find(s.teams, byID(m.TeamID, teamKey))
	if ti < 0 {
		return nil, store.Fail(op, m.TeamID, store.ErrNotFound)
	}
	if find(s.members, func(x *model.TeamMember) bool {
		return x.ID == m.ID || (x.TeamID == m.TeamID && x.UserID == m.UserID)
	}) >= 0 {
		return nil, store.Fail(op, m.TeamID, store.ErrConflict)
	}
	if s.inEvent(m.UserID, s.teams[ti].EventID) {
		return nil, store.Fail(op, m.TeamID, store.AlreadyInEvent())
	}
	s.members = append(s.members, m)
	return &m, nil
}

// ---- ideas ----

func ideaKey(i *model.Idea) string { return i.ID }

func (s *Store) ListIdeas(ctx context.Context, eventID string) ([]model.Idea, error) {
	return list(s, ctx, &s.ideas, func(i *model.Idea) bool {
		return eventID == "" || i.EventID == eventID
	}, cloneIdea)
}

func (s *Store) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	return get(s, ctx, &s.ideas, byID(id, ideaKey), cloneIdea)
}

func (s *Store) AddIdea(ctx context.Context, i model.Idea) (*model.Idea, error) {
	const op = "add_idea"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, i.ID, err)
	}
	defer unlock()

	i = cloneIdea(i)
	if err := store.PrepareIdea(&i); err != nil {
		return nil, store.Fail(op, i.ID, err)
	}
	if find(s.ideas, byID(i.ID, ideaKey)) >= 0 {
		return nil, store.Fail(op, i.ID, store.ErrConflict)
	}
	s.stamp(&i.CreatedAt)
	s.ideas = append(s.ideas, i)
	out := cloneIdea(i)
	return &out, nil
}

func (s *Store) SetIdeaStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Idea, error) {
	const op = "set_idea_status"
	if !status.Valid() {
		return nil, store.Fail(op, id, store.Invalid(model.ErrStatus))
	}
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.ideas, byID(id, ideaKey))
	if i < 0 {
		return nil, store.Fail(op, id, store.ErrNotFound)
	}
	s.ideas[i].Status = status
	out := cloneIdea(s.ideas[i])
	return &out, nil
}

// ---- projects ----

func projectKey(p *model.Project) string { return p.ID }

func (s *Store) ListProjects(ctx context.Context, eventID string) ([]model.Project, error) {
	return list(s, ctx, &s.projects, func(p *model.Project) bool {
		return eventID == "" || p.EventID == eventID
	}, cloneProject)
}

func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return get(s, ctx, &s.projects, byID(id, projectKey), cloneProject)
}

func (s *Store) AddProject(ctx context.Context, p model.Project) (*model.Project, error) {
	const op = "add_project"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, p.ID, err)
	}
	defer unlock()

	p = cloneProject(p)
	if err := store.PrepareProject(&p); err != nil {
		return nil, store.Fail(op, p.ID, err)
	}
	if find(s.projects, byID(p.ID, projectKey)) >= 0 {
		return nil, store.Fail(op, p.ID, store.ErrConflict)
	}
	s.projects = append(s.projects, p)
	out := cloneProject(p)
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	const op = "update_project"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, id, err)
	}
	defer unlock()

	i := find(s.projects, byID(id, projectKey))
	if i < 0 {
		return nil, store.Fail(op, id, store.ErrNotFound)
	}
	p := cloneProject(s.projects[i])
	patch.Apply(&p)
	s.projects[i] = p
	out := cloneProject(p)
	return &out, nil
}

// ---- judging ----

func (s *Store) ListCriteria(ctx context.Context, eventID string) ([]model.Criteria, error) {
	return list(s, ctx, &s.criteria, func(c *model.Criteria) bool {
		return eventID == "" || c.EventID == eventID
	}, cloneCriteria)
}

func (s *Store) AddCriteria(ctx context.Context, c model.Criteria) (*model.Criteria, error) {
	const op = "add_criteria"
	unlock, err := s.begin(ctx)
	if err != nil {
		return nil, store.Fail(op, c.ID, err)
	}
	defer unlock()

	c = cloneCriteria(c)
	if err := store.PrepareCriteria(&c); err != nil {
		return nil, store.Fail(op, c.ID, err)
	}
	if find(s.criteria, func(x *model.Criteria) bool { return x.ID == c.ID }) >= 0 {
		return nil, store.Fail(op, c.ID, store.ErrConflict)
	}
	s.criteria = append(s.criteria, c)
	out := cloneCriteria(c)
	return &out, nil
}

func (s *Store) ListJudges(ctx context.Context, eventID string) ([]model.Judge, error) {
	return list(s, ctx, &s.judges, func(j *model.Judge) bool {
		return eventID == "" || j.EventID == eventID
	}, same[model.Judge])
}

func (s *Store) ListJudgeScores(ctx context.Context, projectID string) ([]model.JudgeScore, error) {
	return list(s, ctx, &s.judgeScores, func(js *model.JudgeScore) bool {
		return projectID == "" || js.ProjectID == projectID
	}, cloneJudgeScore)
}

// AddJudge 评委与评分不在对外接口中，仅供加载演示数据
func (s *Store) AddJudge(j model.Judge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID == "" {
		j.ID = store.NewID()
	}
	s.judges = append(s.judges, j)
}

func (s *Store) AddJudgeScore(js model.JudgeScore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if js.ID == "" {
		js.ID = store.NewID()
	}
	s.judgeScores = append(s.judgeScores, cloneJudgeScore(js))
}
