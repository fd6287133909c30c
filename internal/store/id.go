package store

import (
	"github.com/google/uuid"

	"innovation-hub/internal/model"
)

// NewID 生成新的实体 ID
func NewID() string {
	return uuid.NewString()
}

func ensureID(id *string) {
	if *id == "" {
		*id = NewID()
	}
}

// PrepareUser 为即将写入的记录补齐 ID 与默认值，并检查必填字段。其余 Prepare* 同理
func PrepareUser(u *model.User) error {
	ensureID(&u.ID)
	if u.Email == "" {
		return Invalid(model.ErrEmptyEmail)
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if !u.Role.Valid() {
		return Invalid(model.ErrRole)
	}
	return nil
}

func PrepareEvent(e *model.Event) error {
	ensureID(&e.ID)
	if e.Status == "" {
		e.Status = model.EventDraft
	}
	if err := e.Validate(); err != nil {
		return Invalid(err)
	}
	return nil
}

// CheckEventPatch 在合并补丁之前调用，拒绝让状态后退的更新
func CheckEventPatch(cur *model.Event, patch model.EventPatch) error {
	if patch.Status != nil && !cur.Status.CanMoveTo(*patch.Status) {
		return Invalid(model.ErrTransition)
	}
	return nil
}

func PrepareTeam(t *model.Team) error {
	ensureID(&t.ID)
	if t.Status == "" {
		t.Status = model.ReviewPending
	}
	if t.Name == "" {
		return Invalid(model.ErrEmptyName)
	}
	if t.EventID == "" {
		return Invalid(model.ErrMissingRef)
	}
	if !t.Status.Valid() {
		return Invalid(model.ErrStatus)
	}
	return nil
}

func PrepareTeamMember(m *model.TeamMember) error {
	ensureID(&m.ID)
	if m.Role == "" {
		m.Role = model.MemberMember
	}
	if m.TeamID == "" || m.UserID == "" {
		return Invalid(model.ErrMissingRef)
	}
	if !m.Role.Valid() {
		return Invalid(model.ErrRole)
	}
	return nil
}

func PrepareIdea(i *model.Idea) error {
	ensureID(&i.ID)
	if i.Status == "" {
		i.Status = model.ReviewPending
	}
	if i.Title == "" {
		return Invalid(model.ErrEmptyName)
	}
	if i.EventID == "" || i.UserID == "" {
		return Invalid(model.ErrMissingRef)
	}
	if !i.Status.Valid() {
		return Invalid(model.ErrStatus)
	}
	return nil
}

func PrepareProject(p *model.Project) error {
	ensureID(&p.ID)
	if p.EventID == "" || p.TeamID == "" {
		return Invalid(model.ErrMissingRef)
	}
	return nil
}

func PrepareCriteria(c *model.Criteria) error {
	ensureID(&c.ID)
	if c.Name == "" {
		return Invalid(model.ErrEmptyName)
	}
	if c.Weight < 0 || c.MaxScore <= 0 {
		return Invalid(model.ErrCriteria)
	}
	return nil
}
