package dashboard

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
)

const (
	recentLimit = 5
	openLimit   = 3
)

type Counts struct {
	OpenEvents        int `json:"open_events"`
	ApprovedTeams     int `json:"approved_teams"`
	ApprovedIdeas     int `json:"approved_ideas"`
	SubmittedProjects int `json:"submitted_projects"`
}

type RecentEvent struct {
	model.Event
	TeamCount int `json:"team_count"`
	IdeaCount int `json:"idea_count"`
}

type Rates struct {
	EventsClosed      tool.Progress `json:"events_closed"`
	ProjectsSubmitted tool.Progress `json:"projects_submitted"`
	IdeasApproved     tool.Progress `json:"ideas_approved"`
}

type SummaryResp struct {
	Counts       Counts             `json:"counts"`
	Rates        Rates              `json:"rates"`
	RecentEvents []RecentEvent      `json:"recent_events"`
	OpenEvents   []model.Event      `json:"open_events"`
	MyTeams      []model.Team       `json:"my_teams"`
	MyProjects   []tool.ProjectView `json:"my_projects"`
}

// Summary 首页概览。统计覆盖全部记录，my_* 只包含当前用户所在团队
func Summary(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	events, err := st.ListEvents(ctx)
	if err != nil {
		tool.StoreFail(c, log, "获取事件列表失败", err)
		return
	}
	teams, err := st.ListTeams(ctx, "")
	if err != nil {
		tool.StoreFail(c, log, "获取团队列表失败", err)
		return
	}
	ideas, err := st.ListIdeas(ctx, "")
	if err != nil {
		tool.StoreFail(c, log, "获取创意列表失败", err)
		return
	}
	projects, err := st.ListProjects(ctx, "")
	if err != nil {
		tool.StoreFail(c, log, "获取项目列表失败", err)
		return
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		tool.StoreFail(c, log, "获取成员关系失败", err)
		return
	}

	var (
		resp   SummaryResp
		closed int
	)
	teamsByEvent := make(map[string]int)
	ideasByEvent := make(map[string]int)
	eventByID := tool.Index(events, func(e *model.Event) string { return e.ID })
	teamByID := tool.Index(teams, func(t *model.Team) string { return t.ID })
	openEvents := make([]model.Event, 0, openLimit)
	myTeams := make([]model.Team, 0)
	myProjects := make([]tool.ProjectView, 0)
	for _, e := range events {
		switch e.Status {
		case model.EventOpen:
			resp.Counts.OpenEvents++
			if len(openEvents) < openLimit {
				openEvents = append(openEvents, e)
			}
		case model.EventClosed:
			closed++
		}
	}
	for i := range teams {
		teamsByEvent[teams[i].EventID]++
		if teams[i].Status == model.ReviewApproved {
			resp.Counts.ApprovedTeams++
		}
		if roster.IsTeamMember(user, &teams[i]) {
			myTeams = append(myTeams, teams[i])
		}
	}
	for _, i := range ideas {
		ideasByEvent[i.EventID]++
		if i.Status == model.ReviewApproved {
			resp.Counts.ApprovedIdeas++
		}
	}
	for i := range projects {
		p := &projects[i]
		if p.Submitted() {
			resp.Counts.SubmittedProjects++
		}
		team := teamByID[p.TeamID]
		if roster.IsTeamMember(user, team) {
			myProjects = append(myProjects, tool.NewProjectView(roster, user, p, team, eventByID[p.EventID]))
		}
	}

	recent := tool.Slice(events, 0, recentLimit)
	resp.RecentEvents = make([]RecentEvent, 0, len(recent))
	for _, e := range recent {
		resp.RecentEvents = append(resp.RecentEvents, RecentEvent{
			Event:     e,
			TeamCount: teamsByEvent[e.ID],
			IdeaCount: ideasByEvent[e.ID],
		})
	}
	resp.Rates = Rates{
		EventsClosed:      tool.NewProgress(closed, len(events)),
		ProjectsSubmitted: tool.NewProgress(resp.Counts.SubmittedProjects, len(projects)),
		IdeasApproved:     tool.NewProgress(resp.Counts.ApprovedIdeas, len(ideas)),
	}
	resp.OpenEvents = openEvents
	resp.MyTeams = myTeams
	resp.MyProjects = myProjects
	response.Success(c, resp)
}
