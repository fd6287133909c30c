package project

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/metrics"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
	"innovation-hub/internal/store"
)

type ProjectCreateReq struct {
	EventID       string    `json:"event_id" binding:"required"`
	TeamID        string    `json:"team_id" binding:"required"`
	IdeaID        string    `json:"idea_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// SubmitReq 链接传空串表示清空；submit 为 true 时即使没有链接也记为已提交
type SubmitReq struct {
	CodeLink  *string `json:"code_link" binding:"omitempty,max=512"`
	SlideLink *string `json:"slide_link" binding:"omitempty,max=512"`
	DemoLink  *string `json:"demo_link" binding:"omitempty,max=512"`
	Submit    bool    `json:"submit"`
}

type ProjectDetail struct {
	tool.ProjectView
	Scores     []model.JudgeScore `json:"scores"`
	AvgScore   float64            `json:"avg_score"`
	JudgeCount int                `json:"judge_count"`
}

type SubmitResult struct {
	Project tool.ProjectView `json:"project"`
	Message string           `json:"message"`
}

// ListProjects 返回当前用户可见的所有项目
func ListProjects(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		tool.StoreFail(c, log, "获取成员关系失败", err)
		return
	}
	projects, err := st.ListProjects(ctx, c.Query("event_id"))
	if err != nil {
		tool.StoreFail(c, log, "获取项目列表失败", err)
		return
	}
	teams, err := st.ListTeams(ctx, "")
	if err != nil {
		tool.StoreFail(c, log, "获取团队列表失败", err)
		return
	}
	events, err := st.ListEvents(ctx)
	if err != nil {
		tool.StoreFail(c, log, "获取事件列表失败", err)
		return
	}
	teamByID := tool.Index(teams, func(t *model.Team) string { return t.ID })
	eventByID := tool.Index(events, func(e *model.Event) string { return e.ID })

	visible := roster.VisibleProjects(user, projects)
	items := make([]tool.ProjectView, 0, len(visible))
	for i := range visible {
		p := &visible[i]
		items = append(items, tool.NewProjectView(roster, user, p, teamByID[p.TeamID], eventByID[p.EventID]))
	}
	response.Success(c, gin.H{
		"projects": items,
		"total":    len(items),
	})
}

func GetProject(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	view, ok := loadView(c, user, id)
	if !ok {
		return
	}
	if !view.CanAccess {
		response.Fail(c, response.ErrForbidden)
		return
	}

	scores, err := st.ListJudgeScores(ctx, id)
	if err != nil {
		tool.StoreFail(c, log, "获取评分失败", err, "project_id", id)
		return
	}
	detail := ProjectDetail{ProjectView: *view, Scores: scores}
	var sum float64
	for _, s := range scores {
		if s.SubmittedAt == nil {
			continue
		}
		sum += s.TotalScore
		detail.JudgeCount++
	}
	if detail.JudgeCount > 0 {
		detail.AvgScore = sum / float64(detail.JudgeCount)
	}
	response.Success(c, detail)
}

// SubmitProject 保存提交链接。有链接或显式提交时写入 submitted_at，
// 已提交的项目再次保存只刷新时间。管理员代提交单独记录审计日志
func SubmitProject(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	view, ok := loadView(c, user, id)
	if !ok {
		return
	}
	if !view.CanSubmit {
		response.Fail(c, response.ErrForbidden)
		return
	}

	patch := model.ProjectPatch{
		CodeLink:  req.CodeLink,
		SlideLink: req.SlideLink,
		DemoLink:  req.DemoLink,
	}
	merged := view.Project
	patch.Apply(&merged)
	done, _ := policy.LinkProgress(&merged)
	if policy.SubmissionTransition(view.Project.Submitted(), done > 0, req.Submit) {
		now := time.Now()
		patch.SubmittedAt = &now
	}

	updated, err := st.UpdateProject(ctx, id, patch)
	if err != nil {
		tool.StoreFail(c, log, "提交项目失败", err, "project_id", id)
		return
	}

	l := logger.WithRequest(log, c).With("project_id", id, "team_id", updated.TeamID)
	if view.Label.AdminActing {
		metrics.AdminActingSubmissions.Inc()
		l.Warn("管理员代团队提交项目", "admin_acting", true)
	} else {
		l.Info("项目提交成功", "admin_acting", false)
	}

	// 重新计算视图，标签文案随提交状态变化
	fresh, ok := loadView(c, user, id)
	if !ok {
		return
	}
	response.Success(c, SubmitResult{
		Project: *fresh,
		Message: view.Label.SuccessMessage(),
	})
}

func CreateProject(c *gin.Context) {
	var req ProjectCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()

	team, err := st.GetTeam(ctx, req.TeamID)
	if err != nil {
		tool.StoreFail(c, log, "查询团队失败", err, "team_id", req.TeamID)
		return
	}
	if team.EventID != req.EventID {
		response.Fail(c, response.ErrInvalidRequest.WithTips("团队不属于该事件"))
		return
	}
	if req.IdeaID != "" {
		idea, err := st.GetIdea(ctx, req.IdeaID)
		if err != nil {
			tool.StoreFail(c, log, "查询创意失败", err, "idea_id", req.IdeaID)
			return
		}
		if idea.EventID != req.EventID {
			response.Fail(c, response.ErrInvalidRequest.WithTips("创意不属于该事件"))
			return
		}
	}

	p, err := st.AddProject(ctx, model.Project{
		EventID:       req.EventID,
		TeamID:        req.TeamID,
		IdeaID:        req.IdeaID,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		tool.StoreFail(c, log, "创建项目失败", err, "team_id", req.TeamID)
		return
	}
	logger.WithRequest(log, c).Info("项目创建成功", "project_id", p.ID, "event_id", p.EventID)
	response.Success(c, p)
}

// loadView 读取项目及其团队、事件并构建视图。团队或事件缺失时按悬空引用处理
func loadView(c *gin.Context, user *model.User, id string) (*tool.ProjectView, bool) {
	ctx := c.Request.Context()
	p, err := st.GetProject(ctx, id)
	if err != nil {
		tool.StoreFail(c, log, "查询项目失败", err, "project_id", id)
		return nil, false
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		tool.StoreFail(c, log, "获取成员关系失败", err)
		return nil, false
	}
	team, err := st.GetTeam(ctx, p.TeamID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		tool.StoreFail(c, log, "查询团队失败", err, "team_id", p.TeamID)
		return nil, false
	}
	event, err := st.GetEvent(ctx, p.EventID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		tool.StoreFail(c, log, "查询事件失败", err, "event_id", p.EventID)
		return nil, false
	}
	v := tool.NewProjectView(roster, user, p, team, event)
	return &v, true
}
