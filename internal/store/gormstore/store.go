// Package gormstore 基于 gorm 的 MySQL 实体存储。
package gormstore

import (
	"context"
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

// mysqlDuplicateEntry 唯一索引冲突
const mysqlDuplicateEntry = 1062

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate 将 gorm/驱动错误映射为存储层的哨兵错误
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.WithMessage(store.ErrConflict, err.Error())
	}
	var me *mysqldriver.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return pkgerrors.WithMessage(store.ErrConflict, me.Message)
	}
	return pkgerrors.WithStack(err)
}

func (s *Store) first(ctx context.Context, dst any, query string, args ...any) error {
	return translate(s.db.WithContext(ctx).Where(query, args...).First(dst).Error)
}

// scoped eventID 为空时不加过滤条件
func (s *Store) scoped(ctx context.Context, column, value string) *gorm.DB {
	q := s.db.WithContext(ctx)
	if value != "" {
		q = q.Where(column+" = ?", value)
	}
	return q
}

// ---- users ----

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.first(ctx, &u, "id = ?", id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.first(ctx, &u, "LOWER(email) = ?", strings.ToLower(email)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&users).Error
	return users, translate(err)
}

func (s *Store) AddUser(ctx context.Context, u model.User) (*model.User, error) {
	const op = "add_user"
	if err := store.PrepareUser(&u); err != nil {
		return nil, store.Fail(op, u.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, store.Fail(op, u.ID, translate(err))
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) (*model.User, error) {
	const op = "update_user"
	var u model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		patch.Apply(&u)
		return tx.Model(&u).Select("full_name").Updates(&u).Error
	})
	if err != nil {
		return nil, store.Fail(op, id, translate(err))
	}
	return &u, nil
}

// ---- events ----

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&events).Error
	return events, translate(err)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := s.first(ctx, &e, "id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) AddEvent(ctx context.Context, e model.Event) (*model.Event, error) {
	const op = "add_event"
	if err := store.PrepareEvent(&e); err != nil {
		return nil, store.Fail(op, e.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, store.Fail(op, e.ID, translate(err))
	}
	return &e, nil
}

// eventColumns 补丁可以修改的列，Select 保证 nil 值也会被写回
var eventColumns = []string{"name", "slogan", "description", "image_url", "start_time", "end_time", "status"}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	const op = "update_event"
	var e model.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&e).Error; err != nil {
			return err
		}
		if err := store.CheckEventPatch(&e, patch); err != nil {
			return err
		}
		patch.Apply(&e)
		if err := e.Validate(); err != nil {
			return store.Invalid(err)
		}
		return tx.Model(&e).Select(eventColumns).Updates(&e).Error
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalid) {
			return nil, store.Fail(op, id, err)
		}
		return nil, store.Fail(op, id, translate(err))
	}
	return &e, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	const op = "delete_event"
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Event{})
	if res.Error != nil {
		return store.Fail(op, id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return store.Fail(op, id, store.ErrNotFound)
	}
	return nil
}

// ---- teams ----

func (s *Store) ListTeams(ctx context.Context, eventID string) ([]model.Team, error) {
	teams := make([]model.Team, 0)
	err := s.scoped(ctx, "event_id", eventID).Order("created_at, id").Find(&teams).Error
	return teams, translate(err)
}

func (s *Store) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	var t model.Team
	if err := s.first(ctx, &t, "id = ?", id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) AddTeam(ctx context.Context, t model.Team) (*model.Team, error) {
	const op = "add_team"
	if err := store.PrepareTeam(&t); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, store.Fail(op, t.ID, translate(err))
	}
	return &t, nil
}

func (s *Store) AddTeamWithLeader(ctx context.Context, t model.Team, leaderID string) (*model.Team, error) {
	const op = "add_team_with_leader"
	if err := store.PrepareTeam(&t); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	leader := model.TeamMember{TeamID: t.ID, UserID: leaderID, Role: model.MemberLeader}
	if err := store.PrepareTeamMember(&leader); err != nil {
		return nil, store.Fail(op, t.ID, err)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := joinable(tx, leaderID, t.EventID); err != nil {
			return err
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return tx.Create(&leader).Error
	})
	if err != nil {
		return nil, store.Fail(op, t.ID, translate(err))
	}
	return &t, nil
}

// joinable 锁住用户行使同一用户的加入操作串行化，再检查该事件下是否已有团队
func joinable(tx *gorm.DB, userID, eventID string) error {
	var u model.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Where("id = ?", userID).First(&u).Error; err != nil {
		return err
	}
	var n int64
	err := tx.Model(&model.TeamMember{}).
		Joins("JOIN team ON team.id = team_member.team_id").
		Where("team_member.user_id = ? AND team.event_id = ?", userID, eventID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return store.AlreadyInEvent()
	}
	return nil
}

func (s *Store) SetTeamStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Team, error) {
	const op = "set_team_status"
	if !status.Valid() {
		return nil, store.Fail(op, id, store.Invalid(model.ErrStatus))
	}
	var t model.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			return err
		}
		t.Status = status
		return tx.Model(&t).Update("status", status).Error
	})
	if err != nil {
		return nil, store.Fail(op, id, translate(err))
	}
	return &t, nil
}

func (s *Store) ListTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	members := make([]model.TeamMember, 0)
	err := s.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at, id").Find(&members).Error
	return members, translate(err)
}

func (s *Store) ListMemberships(ctx context.Context, userID string) ([]model.TeamMember, error) {
	members := make([]model.TeamMember, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at, id").Find(&members).Error
	return members, translate(err)
}

func (s *Store) AddTeamMember(ctx context.Context, m model.TeamMember) (*model.TeamMember, error) {
	const op = "add_team_member"
	if err := store.PrepareTeamMember(&m); err != nil {
		return nil, store.Fail(op, m.TeamID, err)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Team
		if err := tx.Select("id", "event_id").Where("id = ?", m.TeamID).First(&t).Error; err != nil {
			return err
		}
		if err := joinable(tx, m.UserID, t.EventID); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, store.Fail(op, m.TeamID, translate(err))
	}
	return &m, nil
}

// ---- ideas ----

func (s *Store) ListIdeas(ctx context.Context, eventID string) ([]model.Idea, error) {
	ideas := make([]model.Idea, 0)
	err := s.scoped(ctx, "event_id", eventID).Order("created_at, id").Find(&ideas).Error
	return ideas, translate(err)
}

func (s *Store) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	var i model.Idea
	if err := s.first(ctx, &i, "id = ?", id); err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Store) AddIdea(ctx context.Context, i model.Idea) (*model.Idea, error) {
	const op = "add_idea"
	if err := store.PrepareIdea(&i); err != nil {
		return nil, store.Fail(op, i.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&i).Error; err != nil {
		return nil, store.Fail(op, i.ID, translate(err))
	}
	return &i, nil
}

func (s *Store) SetIdeaStatus(ctx context.Context, id string, status model.ReviewStatus) (*model.Idea, error) {
	const op = "set_idea_status"
	if !status.Valid() {
		return nil, store.Fail(op, id, store.Invalid(model.ErrStatus))
	}
	var i model.Idea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&i).Error; err != nil {
			return err
		}
		i.Status = status
		return tx.Model(&i).Update("status", status).Error
	})
	if err != nil {
		return nil, store.Fail(op, id, translate(err))
	}
	return &i, nil
}

// ---- projects ----

func (s *Store) ListProjects(ctx context.Context, eventID string) ([]model.Project, error) {
	projects := make([]model.Project, 0)
	err := s.scoped(ctx, "event_id", eventID).Order("created_at, id").Find(&projects).Error
	return projects, translate(err)
}

func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	if err := s.first(ctx, &p, "id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) AddProject(ctx context.Context, p model.Project) (*model.Project, error) {
	const op = "add_project"
	if err := store.PrepareProject(&p); err != nil {
		return nil, store.Fail(op, p.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, store.Fail(op, p.ID, translate(err))
	}
	return &p, nil
}

var projectColumns = []string{"scheduled_time", "code_link", "slide_link", "demo_link", "submitted_at"}

func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	const op = "update_project"
	var p model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		patch.Apply(&p)
		return tx.Model(&p).Select(projectColumns).Updates(&p).Error
	})
	if err != nil {
		return nil, store.Fail(op, id, translate(err))
	}
	return &p, nil
}

// ---- judging ----

func (s *Store) ListCriteria(ctx context.Context, eventID string) ([]model.Criteria, error) {
	criteria := make([]model.Criteria, 0)
	err := s.scoped(ctx, "event_id", eventID).Order("created_at, id").Find(&criteria).Error
	return criteria, translate(err)
}

func (s *Store) AddCriteria(ctx context.Context, c model.Criteria) (*model.Criteria, error) {
	const op = "add_criteria"
	if err := store.PrepareCriteria(&c); err != nil {
		return nil, store.Fail(op, c.ID, err)
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, store.Fail(op, c.ID, translate(err))
	}
	return &c, nil
}

func (s *Store) ListJudges(ctx context.Context, eventID string) ([]model.Judge, error) {
	judges := make([]model.Judge, 0)
	err := s.scoped(ctx, "event_id", eventID).Order("id").Find(&judges).Error
	return judges, translate(err)
}

func (s *Store) ListJudgeScores(ctx context.Context, projectID string) ([]model.JudgeScore, error) {
	scores := make([]model.JudgeScore, 0)
	err := s.scoped(ctx, "project_id", projectID).Order("id").Find(&scores).Error
	return scores, translate(err)
}
