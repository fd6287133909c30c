package event

import (
	"context"

	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
)

// TeamItem 详情中的团队，标记当前用户是否在其中
type TeamItem struct {
	model.Team
	MemberCount int  `json:"member_count"`
	IsMember    bool `json:"is_member"`
}

type Stats struct {
	TeamCount         int           `json:"team_count"`
	IdeaCount         int           `json:"idea_count"`
	ProjectCount      int           `json:"project_count"`
	ApprovedTeams     int           `json:"approved_teams"`
	ApprovedIdeas     int           `json:"approved_ideas"`
	SubmittedProjects int           `json:"submitted_projects"`
	TeamApproval      tool.Progress `json:"team_approval"`
	IdeaApproval      tool.Progress `json:"idea_approval"`
	Submission        tool.Progress `json:"submission"`
	Overall           tool.Progress `json:"overall"`
}

type Permissions struct {
	CanManage     bool `json:"can_manage"`
	CanCreateTeam bool `json:"can_create_team"`
	CanCreateIdea bool `json:"can_create_idea"`
}

type Detail struct {
	Event       model.Event        `json:"event"`
	Teams       []TeamItem         `json:"teams"`
	Ideas       []model.Idea       `json:"ideas"`
	Projects    []tool.ProjectView `json:"projects"` // 仅当前用户可见的项目
	Criteria    []model.Criteria   `json:"criteria"`
	JudgeCount  int                `json:"judge_count"`
	Stats       Stats              `json:"stats"`
	Permissions Permissions        `json:"permissions"`
}

func buildDetail(ctx context.Context, user *model.User, id string) (*Detail, error) {
	event, err := st.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := st.ListTeams(ctx, id)
	if err != nil {
		return nil, err
	}
	ideas, err := st.ListIdeas(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, err := st.ListProjects(ctx, id)
	if err != nil {
		return nil, err
	}
	criteria, err := st.ListCriteria(ctx, id)
	if err != nil {
		return nil, err
	}
	judges, err := st.ListJudges(ctx, id)
	if err != nil {
		return nil, err
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Event:      *event,
		Teams:      make([]TeamItem, 0, len(teams)),
		Ideas:      ideas,
		Criteria:   criteria,
		JudgeCount: len(judges),
	}

	inTeam := false
	for i := range teams {
		members, err := st.ListTeamMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		item := TeamItem{Team: teams[i], MemberCount: len(members), IsMember: roster.IsTeamMember(user, &teams[i])}
		inTeam = inTeam || item.IsMember
		d.Teams = append(d.Teams, item)
	}

	teamByID := tool.Index(teams, func(t *model.Team) string { return t.ID })
	visible := roster.VisibleProjects(user, projects)
	d.Projects = make([]tool.ProjectView, 0, len(visible))
	for i := range visible {
		d.Projects = append(d.Projects, tool.NewProjectView(roster, user, &visible[i], teamByID[visible[i].TeamID], event))
	}

	d.Stats = computeStats(teams, ideas, projects)
	open := event.Status == model.EventOpen
	d.Permissions = Permissions{
		CanManage:     policy.CanManageEvents(user),
		CanCreateTeam: open && !inTeam,
		CanCreateIdea: open,
	}
	return d, nil
}

// computeStats 统计覆盖事件下全部记录，不受可见性过滤影响
func computeStats(teams []model.Team, ideas []model.Idea, projects []model.Project) Stats {
	s := Stats{TeamCount: len(teams), IdeaCount: len(ideas), ProjectCount: len(projects)}
	for _, t := range teams {
		if t.Status == model.ReviewApproved {
			s.ApprovedTeams++
		}
	}
	for _, i := range ideas {
		if i.Status == model.ReviewApproved {
			s.ApprovedIdeas++
		}
	}
	for i := range projects {
		if projects[i].Submitted() {
			s.SubmittedProjects++
		}
	}
	s.TeamApproval = tool.NewProgress(s.ApprovedTeams, s.TeamCount)
	s.IdeaApproval = tool.NewProgress(s.ApprovedIdeas, s.IdeaCount)
	s.Submission = tool.NewProgress(s.SubmittedProjects, s.ProjectCount)
	s.Overall = tool.NewProgress(
		s.ApprovedTeams+s.ApprovedIdeas+s.SubmittedProjects,
		s.TeamCount+s.IdeaCount+s.ProjectCount,
	)
	return s
}
