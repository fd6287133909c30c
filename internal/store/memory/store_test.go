package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s, err := NewSeeded()
	require.NoError(t, err)
	return s
}

func TestSeedFixtures(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	assert.Equal(t, model.RoleAdmin, users[0].Role)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventOpen, events[0].Status)
	assert.Equal(t, model.EventDraft, events[1].Status)

	teams, err := s.ListTeams(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, teams, 3)

	members, err := s.ListTeamMembers(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	projects, err := s.ListProjects(ctx, "1")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.True(t, projects[0].Submitted())
	assert.False(t, projects[1].Submitted())

	criteria, err := s.ListCriteria(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, criteria, 4)

	judges, err := s.ListJudges(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, judges, 1)

	scores, err := s.ListJudgeScores(ctx, "1")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, float64(85), scores[0].TotalScore)

	u, err := s.GetUserByEmail(ctx, "ADMIN@teko.vn")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.GetEvent(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetProject(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUser(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTeam(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetIdea(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListsAreNeverNil(t *testing.T) {
	s := New()
	ctx := context.Background()

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	projects, err := s.ListProjects(ctx, "nope")
	require.NoError(t, err)
	assert.NotNil(t, projects)
}

func TestAddEventAssignsIDAndPreservesOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 5; i++ {
		e, err := s.AddEvent(ctx, model.Event{
			Name:      fmt.Sprintf("event-%d", i),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)
		assert.Equal(t, model.EventDraft, e.Status)
		assert.False(t, e.CreatedAt.IsZero())
		ids = append(ids, e.ID)
	}

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, ids[i], e.ID)
	}
}

func TestAddEventRejectsInvalid(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	_, err := s.AddEvent(ctx, model.Event{Name: "bad", StartTime: now, EndTime: now.Add(-time.Hour)})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalid)
	assert.ErrorIs(t, err, model.ErrTimeRange)

	var we *store.WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "add_event", we.Op)

	events, _ := s.ListEvents(ctx)
	assert.Empty(t, events)
}

func TestUpdateEventMergesPatch(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	before, err := s.GetEvent(ctx, "2")
	require.NoError(t, err)

	name := "AI Hackathon 2025"
	after, err := s.UpdateEvent(ctx, "2", model.EventPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, after.Name)
	assert.Equal(t, before.Slogan, after.Slogan)
	assert.Equal(t, before.StartTime, after.StartTime)
	assert.Equal(t, before.Status, after.Status)

	got, err := s.GetEvent(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestUpdateEventInvalidLeavesStateIntact(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	before, err := s.GetEvent(ctx, "1")
	require.NoError(t, err)

	end := before.StartTime.Add(-time.Hour)
	_, err = s.UpdateEvent(ctx, "1", model.EventPatch{EndTime: &end})
	assert.ErrorIs(t, err, store.ErrInvalid)

	after, err := s.GetEvent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateEventRejectsBackwardStatus(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	closed := model.EventClosed
	_, err := s.UpdateEvent(ctx, "1", model.EventPatch{Status: &closed})
	require.NoError(t, err)

	open := model.EventOpen
	name := "Reopened"
	_, err = s.UpdateEvent(ctx, "1", model.EventPatch{Status: &open, Name: &name})
	assert.ErrorIs(t, err, store.ErrInvalid)
	assert.ErrorIs(t, err, model.ErrTransition)

	got, err := s.GetEvent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, model.EventClosed, got.Status)
	assert.NotEqual(t, name, got.Name)

	// 原地不动是允许的
	_, err = s.UpdateEvent(ctx, "1", model.EventPatch{Status: &closed})
	assert.NoError(t, err)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	name := "x"
	_, err := s.UpdateEvent(ctx, "404", model.EventPatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UpdateProject(ctx, "404", model.ProjectPatch{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEvent(ctx, "404"), store.ErrNotFound)
}

func TestDeleteEvent(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteEvent(ctx, "1"))
	_, err := s.GetEvent(ctx, "1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].ID)
}

func TestReadsReturnCopies(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	p, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	*p.CodeLink = "https://evil.example.com"
	p.TeamID = "2"

	again, err := s.GetProject(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/team1/ai-chatbot", *again.CodeLink)
	assert.Equal(t, "1", again.TeamID)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	events[0].Name = "mutated"
	*events[0].Slogan = "mutated"
	e, err := s.GetEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", e.Name)
	assert.NotEqual(t, "mutated", *e.Slogan)
}

func TestWritesDoNotAliasInput(t *testing.T) {
	s := New()
	ctx := context.Background()

	desc := "original"
	i, err := s.AddIdea(ctx, model.Idea{EventID: "e", UserID: "u", Title: "t", Description: &desc})
	require.NoError(t, err)
	desc = "changed"

	got, err := s.GetIdea(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", *got.Description)
}

func TestUpdateProjectIsIdempotent(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	submitted := time.Date(2024, 3, 26, 10, 0, 0, 0, time.UTC)
	patch := model.ProjectPatch{
		CodeLink:    model.Str("https://github.com/team2/predict"),
		SlideLink:   model.Str(""),
		SubmittedAt: &submitted,
	}
	first, err := s.UpdateProject(ctx, "2", patch)
	require.NoError(t, err)
	second, err := s.UpdateProject(ctx, "2", patch)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, "https://github.com/team2/predict", *second.CodeLink)
	assert.Nil(t, second.SlideLink)
	assert.Nil(t, second.DemoLink)
	require.NotNil(t, second.SubmittedAt)
	assert.True(t, submitted.Equal(*second.SubmittedAt))
	assert.Equal(t, "2", second.TeamID)
}

func TestUpdateProjectClearsLinks(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	p, err := s.UpdateProject(ctx, "1", model.ProjectPatch{DemoLink: model.Str("")})
	require.NoError(t, err)
	assert.Nil(t, p.DemoLink)
	assert.NotNil(t, p.CodeLink)
	assert.True(t, p.Submitted())
}

func TestUserEmailUnique(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.AddUser(ctx, model.User{Email: "User@teko.vn"})
	assert.ErrorIs(t, err, store.ErrConflict)

	u, err := s.AddUser(ctx, model.User{Email: "new@teko.vn"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)

	_, err = s.AddUser(ctx, model.User{Email: "other@teko.vn", Role: "root"})
	assert.ErrorIs(t, err, store.ErrInvalid)
}

func TestUpdateUserKeepsRole(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	u, err := s.UpdateUser(ctx, "2", model.ProfilePatch{FullName: model.Str("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", *u.FullName)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.Equal(t, "user@teko.vn", u.Email)
}

func TestTeamMemberUniquePerTeam(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	_, err := s.AddTeamMember(ctx, model.TeamMember{TeamID: "1", UserID: "2"})
	assert.ErrorIs(t, err, store.ErrConflict)

	other, err := s.AddTeam(ctx, model.Team{EventID: "2", Name: "Next Round"})
	require.NoError(t, err)
	m, err := s.AddTeamMember(ctx, model.TeamMember{TeamID: other.ID, UserID: "2"})
	require.NoError(t, err)
	assert.Equal(t, model.MemberMember, m.Role)

	memberships, err := s.ListMemberships(ctx, "2")
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "1", memberships[0].TeamID)
	assert.Equal(t, other.ID, memberships[1].TeamID)

	_, err = s.AddTeamMember(ctx, model.TeamMember{TeamID: "404", UserID: "2"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTeamMemberOnePerEvent(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	// 用户 2 已在事件 1 的团队 1
	_, err := s.AddTeamMember(ctx, model.TeamMember{TeamID: "3", UserID: "2"})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.ErrorIs(t, err, model.ErrTeamPerEvent)

	_, err = s.AddTeamWithLeader(ctx, model.Team{EventID: "1", Name: "Second Try"}, "2")
	assert.ErrorIs(t, err, model.ErrTeamPerEvent)

	teams, err := s.ListTeams(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, teams, 3)
}

func TestAddTeamWithLeader(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	team, err := s.AddTeamWithLeader(ctx, model.Team{EventID: "1", Name: "Solo"}, "1")
	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, model.ReviewPending, team.Status)

	members, err := s.ListTeamMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "1", members[0].UserID)
	assert.Equal(t, model.MemberLeader, members[0].Role)
}

func TestConcurrentTeamCreationOnePerEvent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddTeamWithLeader(ctx, model.Team{EventID: "1", Name: fmt.Sprintf("team-%d", i)}, "u1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, model.ErrTeamPerEvent)
			rejected++
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, rejected)
	memberships, err := s.ListMemberships(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, memberships, 1)
}

func TestReviewStatus(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	team, err := s.SetTeamStatus(ctx, "3", model.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, team.Status)

	_, err = s.SetTeamStatus(ctx, "3", "maybe")
	assert.ErrorIs(t, err, store.ErrInvalid)

	idea, err := s.SetIdeaStatus(ctx, "3", model.ReviewRejected)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewRejected, idea.Status)
}

func TestAddCriteriaValidates(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.AddCriteria(ctx, model.Criteria{EventID: "1", Name: "zero", MaxScore: 0})
	assert.ErrorIs(t, err, store.ErrInvalid)

	c := model.Criteria{EventID: "1", Name: "Design"}
	require.NoError(t, c.Normalize(nil, nil))
	got, err := s.AddCriteria(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got.Weight)
	assert.Equal(t, float64(10), got.MaxScore)
}

func TestWriteFaultLeavesStateIntact(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	boom := errors.New("disk on fire")

	s.SetWriteFault(boom)
	_, err := s.UpdateProject(ctx, "2", model.ProjectPatch{CodeLink: model.Str("https://x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var we *store.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "2", we.ID)

	p, err := s.GetProject(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, p.CodeLink)

	s.SetWriteFault(nil)
	_, err = s.UpdateProject(ctx, "2", model.ProjectPatch{CodeLink: model.Str("https://x")})
	require.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.AddTeam(ctx, model.Team{EventID: "1", Name: "late"})
	assert.ErrorIs(t, err, context.Canceled)

	teams, err := s.ListTeams(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, teams, 3)
}

func TestConcurrentWritesAreAllObserved(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddTeam(ctx, model.Team{EventID: "1", Name: fmt.Sprintf("team-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	teams, err := s.ListTeams(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, teams, 50)
}
