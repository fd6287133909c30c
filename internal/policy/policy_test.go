package policy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/internal/model"
)

type fixture struct {
	admin, leader, member, outsider *model.User
	teamA, teamB                    *model.Team
	openEvent, closedEvent          *model.Event
	projectA, projectB              *model.Project
	roster                          *Roster
}

func user(id string, role model.Role) *model.User {
	return &model.User{Model: model.Model{ID: id}, Email: id + "@example.com", Role: role}
}

func newFixture() *fixture {
	f := &fixture{
		admin:       user("1", model.RoleAdmin),
		leader:      user("2", model.RoleUser),
		member:      user("3", model.RoleUser),
		outsider:    user("4", model.RoleUser),
		openEvent:   &model.Event{Model: model.Model{ID: "e1"}, Status: model.EventOpen},
		closedEvent: &model.Event{Model: model.Model{ID: "e2"}, Status: model.EventClosed},
	}
	f.teamA = &model.Team{Model: model.Model{ID: "t1"}, EventID: "e1"}
	f.teamB = &model.Team{Model: model.Model{ID: "t2"}, EventID: "e1"}
	f.projectA = &model.Project{ID: "p1", EventID: "e1", TeamID: "t1"}
	f.projectB = &model.Project{ID: "p2", EventID: "e1", TeamID: "t2"}
	f.roster = NewRoster(
		model.TeamMember{ID: "m1", TeamID: "t1", UserID: "2", Role: model.MemberLeader},
		model.TeamMember{ID: "m2", TeamID: "t1", UserID: "3", Role: model.MemberMember},
		model.TeamMember{ID: "m3", TeamID: "t2", UserID: "4", Role: model.MemberLeader},
	)
	return f
}

func TestCanManageEvents(t *testing.T) {
	f := newFixture()
	assert.True(t, CanManageEvents(f.admin))
	assert.False(t, CanManageEvents(f.leader))
	assert.False(t, CanManageEvents(nil))
}

func TestIsTeamMember(t *testing.T) {
	f := newFixture()
	assert.True(t, f.roster.IsTeamMember(f.leader, f.teamA))
	assert.True(t, f.roster.IsTeamMember(f.member, f.teamA))
	assert.False(t, f.roster.IsTeamMember(f.outsider, f.teamA))
	assert.False(t, f.roster.IsTeamMember(f.admin, f.teamA))
	assert.False(t, f.roster.IsTeamMember(nil, f.teamA))
	assert.False(t, f.roster.IsTeamMember(f.leader, nil))

	var empty *Roster
	assert.False(t, empty.IsTeamMember(f.leader, f.teamA))
}

func TestCanAccessProjectNonAdminEqualsMembership(t *testing.T) {
	f := newFixture()
	teams := map[string]*model.Team{"t1": f.teamA, "t2": f.teamB}
	for _, u := range []*model.User{f.leader, f.member, f.outsider} {
		for _, p := range []*model.Project{f.projectA, f.projectB} {
			assert.Equal(t, f.roster.IsTeamMember(u, teams[p.TeamID]), f.roster.CanAccessProject(u, p),
				"user %s project %s", u.ID, p.ID)
		}
	}
}

func TestCanAccessProjectAdminAlways(t *testing.T) {
	f := newFixture()
	for _, p := range []*model.Project{f.projectA, f.projectB, {ID: "orphan"}} {
		assert.True(t, f.roster.CanAccessProject(f.admin, p))
	}
}

func TestCanAccessProjectDanglingTeamDenies(t *testing.T) {
	f := newFixture()
	orphan := &model.Project{ID: "p9", EventID: "e1", TeamID: "deleted-team"}
	assert.False(t, f.roster.CanAccessProject(f.leader, orphan))

	noTeam := &model.Project{ID: "p10", EventID: "e1"}
	assert.False(t, f.roster.CanAccessProject(f.leader, noTeam))
	assert.False(t, f.roster.CanAccessProject(f.leader, nil))
	assert.False(t, f.roster.CanAccessProject(nil, f.projectA))
}

func TestCanSubmitProjectRequiresOpenEvent(t *testing.T) {
	f := newFixture()
	statuses := []model.EventStatus{model.EventDraft, model.EventClosed, "unknown"}
	for _, u := range []*model.User{f.admin, f.leader, f.member, f.outsider} {
		for _, st := range statuses {
			e := &model.Event{Model: model.Model{ID: "e1"}, Status: st}
			assert.False(t, f.roster.CanSubmitProject(u, f.projectA, e), "user %s status %s", u.ID, st)
		}
	}

	assert.True(t, f.roster.CanSubmitProject(f.leader, f.projectA, f.openEvent))
	assert.True(t, f.roster.CanSubmitProject(f.admin, f.projectA, f.openEvent))
	assert.False(t, f.roster.CanSubmitProject(f.outsider, f.projectA, f.openEvent))
}

func TestClosedEventBlocksTeamMemberSubmit(t *testing.T) {
	f := newFixture()
	p := &model.Project{ID: "p3", EventID: "e2", TeamID: "t1"}
	require.True(t, f.roster.CanAccessProject(f.member, p))
	assert.False(t, f.roster.CanSubmitProject(f.member, p, f.closedEvent))
}

func TestCanSubmitProjectMissingOrMismatchedEvent(t *testing.T) {
	f := newFixture()
	assert.False(t, f.roster.CanSubmitProject(f.leader, f.projectA, nil))
	assert.False(t, f.roster.CanSubmitProject(f.leader, nil, f.openEvent))

	other := &model.Event{Model: model.Model{ID: "e3"}, Status: model.EventOpen}
	assert.False(t, f.roster.CanSubmitProject(f.leader, f.projectA, other))
}

func TestSubmissionLabel(t *testing.T) {
	f := newFixture()

	admin := f.roster.SubmissionLabel(f.admin, f.projectA)
	assert.True(t, admin.AdminActing)
	assert.Equal(t, "Submit results (Admin)", admin.Text)
	assert.NotEmpty(t, admin.Notice)
	assert.Equal(t, "Admin submitted the project successfully", admin.SuccessMessage())

	leader := f.roster.SubmissionLabel(f.leader, f.projectA)
	assert.False(t, leader.AdminActing)
	assert.Equal(t, "Submit results", leader.Text)
	assert.Equal(t, "Project submitted successfully", leader.SuccessMessage())

	now := time.Now()
	submitted := *f.projectA
	submitted.SubmittedAt = &now
	assert.Equal(t, "Update results (Admin)", f.roster.SubmissionLabel(f.admin, &submitted).Text)
	assert.Equal(t, "Update results", f.roster.SubmissionLabel(f.member, &submitted).Text)
	assert.True(t, f.roster.SubmissionLabel(f.member, &submitted).Submitted)
}

func TestAdminWhoIsMemberIsNotAdminActing(t *testing.T) {
	f := newFixture()
	f.roster.Add(model.TeamMember{ID: "m4", TeamID: "t1", UserID: f.admin.ID, Role: model.MemberMember})
	assert.False(t, f.roster.SubmissionLabel(f.admin, f.projectA).AdminActing)
	assert.True(t, f.roster.SubmissionLabel(f.admin, f.projectB).AdminActing)
}

func TestVisibleProjects(t *testing.T) {
	f := newFixture()
	all := []model.Project{
		{ID: "p1", TeamID: "t1"},
		{ID: "p2", TeamID: "t2"},
		{ID: "p3", TeamID: "t1"},
		{ID: "p4", TeamID: "ghost"},
	}

	assert.Equal(t, all, f.roster.VisibleProjects(f.admin, all))

	got := f.roster.VisibleProjects(f.member, all)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)

	got = f.roster.VisibleProjects(f.outsider, all)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	assert.Empty(t, f.roster.VisibleProjects(nil, all))
	assert.Empty(t, f.roster.VisibleProjects(f.member, nil))
}

func TestVisibleProjectsIsExactMembershipSubset(t *testing.T) {
	f := newFixture()
	teams := []string{"t1", "t2", "t3"}
	var all []model.Project
	for i := 0; i < 30; i++ {
		all = append(all, model.Project{ID: fmt.Sprintf("p%02d", i), TeamID: teams[i%len(teams)]})
	}
	for _, u := range []*model.User{f.leader, f.member, f.outsider} {
		var want []model.Project
		for _, p := range all {
			if f.roster.isMember(u.ID, p.TeamID) {
				want = append(want, p)
			}
		}
		got := f.roster.VisibleProjects(u, all)
		assert.Equal(t, len(want), len(got))
		assert.Equal(t, want, got)
	}
}

func TestProgressRatio(t *testing.T) {
	for _, x := range []int{0, 1, 5, -3} {
		assert.Equal(t, float64(0), ProgressRatio(x, 0))
		assert.Equal(t, 0, Percent(x, 0))
	}
	assert.Equal(t, 0.75, ProgressRatio(3, 4))
	assert.Equal(t, 75, Percent(3, 4))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 100, Percent(4, 4))
	assert.Equal(t, float64(1), ProgressRatio(5, 4))
}

func TestCanTransitionEvent(t *testing.T) {
	cases := []struct {
		from, to model.EventStatus
		want     bool
	}{
		{model.EventDraft, model.EventOpen, true},
		{model.EventOpen, model.EventClosed, true},
		{model.EventDraft, model.EventClosed, true},
		{model.EventOpen, model.EventOpen, true},
		{model.EventOpen, model.EventDraft, false},
		{model.EventClosed, model.EventOpen, false},
		{model.EventClosed, model.EventDraft, false},
		{model.EventDraft, "archived", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransitionEvent(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	f := newFixture()
	assert.True(t, CanChangeEventStatus(f.admin, model.EventDraft, model.EventOpen))
	assert.False(t, CanChangeEventStatus(f.leader, model.EventDraft, model.EventOpen))
}

func TestSubmissionTransition(t *testing.T) {
	assert.False(t, SubmissionTransition(false, false, false))
	assert.True(t, SubmissionTransition(false, true, false))
	assert.True(t, SubmissionTransition(false, false, true))
	assert.True(t, SubmissionTransition(true, false, false))
}

func TestLinkProgress(t *testing.T) {
	done, total := LinkProgress(&model.Project{CodeLink: model.Str("https://git"), DemoLink: model.Str("")})
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	done, _ = LinkProgress(nil)
	assert.Equal(t, 0, done)
}

func TestCanJoinTeamOneTeamPerEvent(t *testing.T) {
	f := newFixture()
	eventTeams := []model.Team{*f.teamA, *f.teamB}
	newcomer := user("5", model.RoleUser)

	assert.True(t, f.roster.CanJoinTeam(newcomer, f.teamB, eventTeams))
	assert.False(t, f.roster.CanJoinTeam(f.member, f.teamB, eventTeams))
	assert.False(t, f.roster.CanJoinTeam(f.member, f.teamA, eventTeams))

	otherEventTeam := &model.Team{Model: model.Model{ID: "t9"}, EventID: "e2"}
	assert.True(t, f.roster.CanJoinTeam(f.member, otherEventTeam, append(eventTeams, *otherEventTeam)))
	assert.False(t, f.roster.CanJoinTeam(f.member, &model.Team{Model: model.Model{ID: "t8"}}, eventTeams))
}

func TestCanManageTeam(t *testing.T) {
	f := newFixture()
	assert.True(t, f.roster.CanManageTeam(f.leader, f.teamA))
	assert.False(t, f.roster.CanManageTeam(f.member, f.teamA))
	assert.True(t, f.roster.CanManageTeam(f.admin, f.teamA))
	assert.False(t, f.roster.CanManageTeam(f.outsider, f.teamA))
}
