package event

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
	"innovation-hub/tools"
)

type teamRow struct {
	ID        string             `excel:"团队编号"`
	Name      string             `excel:"团队名称"`
	Status    model.ReviewStatus `excel:"审核状态"`
	Members   int                `excel:"成员数"`
	CreatedAt time.Time          `excel:"创建时间"`
}

type ideaRow struct {
	ID        string             `excel:"创意编号"`
	Title     string             `excel:"标题"`
	Author    string             `excel:"作者"`
	Status    model.ReviewStatus `excel:"审核状态"`
	CreatedAt time.Time          `excel:"创建时间"`
}

type projectRow struct {
	ID            string     `excel:"项目编号"`
	Team          string     `excel:"团队"`
	ScheduledTime time.Time  `excel:"答辩时间"`
	CodeLink      *string    `excel:"源码链接"`
	SlideLink     *string    `excel:"幻灯片链接"`
	DemoLink      *string    `excel:"演示链接"`
	Progress      string     `excel:"完成度"`
	SubmittedAt   *time.Time `excel:"提交时间"`
}

type criteriaRow struct {
	Name        string  `excel:"评分维度"`
	Description *string `excel:"说明"`
	Weight      float64 `excel:"权重"`
	MaxScore    float64 `excel:"满分"`
}

// ExportEvent 导出事件报表（团队、创意、项目、评分维度四个工作表）
func ExportEvent(c *gin.Context) {
	id := c.Param("id")
	f, name, err := buildReport(c.Request.Context(), id)
	if err != nil {
		tool.StoreFail(c, log, "生成事件报表失败", err, "id", id)
		return
	}
	defer f.Close()

	if err := tools.SendExcel(c, f, fmt.Sprintf("%s_report.xlsx", name)); err != nil {
		log.Error("写出报表失败", "error", err, "id", id)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	logger.WithRequest(log, c).Info("导出事件报表", "event_id", id)
}

func buildReport(ctx context.Context, id string) (*excelize.File, string, error) {
	event, err := st.GetEvent(ctx, id)
	if err != nil {
		return nil, "", err
	}
	teams, err := st.ListTeams(ctx, id)
	if err != nil {
		return nil, "", err
	}
	ideas, err := st.ListIdeas(ctx, id)
	if err != nil {
		return nil, "", err
	}
	projects, err := st.ListProjects(ctx, id)
	if err != nil {
		return nil, "", err
	}
	criteria, err := st.ListCriteria(ctx, id)
	if err != nil {
		return nil, "", err
	}
	users, err := st.ListUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	userByID := tool.Index(users, func(u *model.User) string { return u.ID })
	teamByID := tool.Index(teams, func(t *model.Team) string { return t.ID })

	teamRows := make([]teamRow, 0, len(teams))
	for _, t := range teams {
		members, err := st.ListTeamMembers(ctx, t.ID)
		if err != nil {
			return nil, "", err
		}
		teamRows = append(teamRows, teamRow{ID: t.ID, Name: t.Name, Status: t.Status, Members: len(members), CreatedAt: t.CreatedAt})
	}

	ideaRows := make([]ideaRow, 0, len(ideas))
	for _, i := range ideas {
		ideaRows = append(ideaRows, ideaRow{
			ID:        i.ID,
			Title:     i.Title,
			Author:    userByID[i.UserID].DisplayName(),
			Status:    i.Status,
			CreatedAt: i.CreatedAt,
		})
	}

	projectRows := make([]projectRow, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		done, total := policy.LinkProgress(p)
		row := projectRow{
			ID:            p.ID,
			ScheduledTime: p.ScheduledTime,
			CodeLink:      p.CodeLink,
			SlideLink:     p.SlideLink,
			DemoLink:      p.DemoLink,
			Progress:      fmt.Sprintf("%d/%d", done, total),
			SubmittedAt:   p.SubmittedAt,
		}
		if t := teamByID[p.TeamID]; t != nil {
			row.Team = t.Name
		}
		projectRows = append(projectRows, row)
	}

	criteriaRows := make([]criteriaRow, 0, len(criteria))
	for _, cr := range criteria {
		criteriaRows = append(criteriaRows, criteriaRow{Name: cr.Name, Description: cr.Description, Weight: cr.Weight, MaxScore: cr.MaxScore})
	}

	f := excelize.NewFile()
	sheets := []struct {
		name string
		data any
	}{
		{"Teams", teamRows},
		{"Ideas", ideaRows},
		{"Projects", projectRows},
		{"Criteria", criteriaRows},
	}
	for _, s := range sheets {
		if err := tools.ExportToExcel(f, s.name, s.data); err != nil {
			_ = f.Close()
			return nil, "", err
		}
	}
	if err := tools.DropDefaultSheet(f); err != nil {
		_ = f.Close()
		return nil, "", err
	}
	return f, event.Name, nil
}
