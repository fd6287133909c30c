package team

import (
	"context"

	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
)

type TeamCreateReq struct {
	EventID string `json:"event_id" binding:"required"`
	Name    string `json:"name" binding:"required,max=100"`
}

type MemberAddReq struct {
	UserID string           `json:"user_id" binding:"required"`
	Role   model.MemberRole `json:"role" binding:"omitempty,oneof=leader member"`
}

type ReviewReq struct {
	Status model.ReviewStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

type TeamItem struct {
	model.Team
	MemberCount int  `json:"member_count"`
	IsMember    bool `json:"is_member"`
	CanManage   bool `json:"can_manage"`
}

type MemberItem struct {
	model.TeamMember
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type TeamDetail struct {
	TeamItem
	Members []MemberItem `json:"members"`
}

func ListTeams(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	teams, err := st.ListTeams(ctx, c.Query("event_id"))
	if err != nil {
		tool.StoreFail(c, log, "获取团队列表失败", err)
		return
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		tool.StoreFail(c, log, "获取成员关系失败", err)
		return
	}

	items := make([]TeamItem, 0, len(teams))
	for i := range teams {
		members, err := st.ListTeamMembers(ctx, teams[i].ID)
		if err != nil {
			tool.StoreFail(c, log, "获取团队成员失败", err, "team_id", teams[i].ID)
			return
		}
		items = append(items, itemOf(roster, user, &teams[i], len(members)))
	}
	response.Success(c, items)
}

func GetTeam(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	detail, err := buildDetail(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		tool.StoreFail(c, log, "获取团队详情失败", err, "id", c.Param("id"))
		return
	}
	response.Success(c, detail)
}

// CreateTeam 创建者成为队长；事件必须处于 open，且同一事件下只能加入一个团队
func CreateTeam(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	var req TeamCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()

	event, err := st.GetEvent(ctx, req.EventID)
	if err != nil {
		tool.StoreFail(c, log, "查询事件失败", err, "event_id", req.EventID)
		return
	}
	if event.Status != model.EventOpen {
		response.Fail(c, response.ErrEventNotOpen)
		return
	}
	if ok, err := canJoin(ctx, user, &model.Team{EventID: event.ID}); err != nil {
		tool.StoreFail(c, log, "查询成员关系失败", err)
		return
	} else if !ok {
		response.Fail(c, response.ErrAlreadyInTeam)
		return
	}

	// 并发创建时由存储层在写入时再检查一次
	team, err := st.AddTeamWithLeader(ctx, model.Team{EventID: event.ID, Name: req.Name}, user.ID)
	if err != nil {
		tool.StoreFail(c, log, "创建团队失败", err, "name", req.Name)
		return
	}

	logger.WithRequest(log, c).Info("团队创建成功", "team_id", team.ID, "event_id", event.ID)
	detail, err := buildDetail(ctx, user, team.ID)
	if err != nil {
		tool.StoreFail(c, log, "获取团队详情失败", err, "id", team.ID)
		return
	}
	response.Success(c, detail)
}

// AddMember 队长或管理员把用户加入团队
func AddMember(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	var req MemberAddReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	team, err := st.GetTeam(ctx, id)
	if err != nil {
		tool.StoreFail(c, log, "查询团队失败", err, "id", id)
		return
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		tool.StoreFail(c, log, "查询成员关系失败", err)
		return
	}
	if !roster.CanManageTeam(user, team) {
		response.Fail(c, response.ErrForbidden.WithTips("只有队长或管理员可以添加成员"))
		return
	}

	target, err := st.GetUser(ctx, req.UserID)
	if err != nil {
		tool.StoreFail(c, log, "查询用户失败", err, "user_id", req.UserID)
		return
	}
	if ok, err := canJoin(ctx, target, team); err != nil {
		tool.StoreFail(c, log, "查询成员关系失败", err)
		return
	} else if !ok {
		response.Fail(c, response.ErrAlreadyInTeam)
		return
	}

	role := req.Role
	if role == "" {
		role = model.MemberMember
	}
	member, err := st.AddTeamMember(ctx, model.TeamMember{TeamID: team.ID, UserID: target.ID, Role: role})
	if err != nil {
		tool.StoreFail(c, log, "添加成员失败", err, "team_id", team.ID, "user_id", target.ID)
		return
	}
	logger.WithRequest(log, c).Info("添加团队成员", "team_id", team.ID, "member_id", target.ID)
	response.Success(c, member)
}

// ReviewTeam 管理员审核团队
func ReviewTeam(c *gin.Context) {
	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	id := c.Param("id")
	team, err := st.SetTeamStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		tool.StoreFail(c, log, "审核团队失败", err, "id", id)
		return
	}
	logger.WithRequest(log, c).Info("团队审核", "team_id", id, "status", req.Status)
	response.Success(c, team)
}

// canJoin 以目标用户自己的成员关系判断其能否加入 team
func canJoin(ctx context.Context, u *model.User, team *model.Team) (bool, error) {
	roster, err := tool.RosterFor(ctx, st, u)
	if err != nil {
		return false, err
	}
	eventTeams, err := st.ListTeams(ctx, team.EventID)
	if err != nil {
		return false, err
	}
	return roster.CanJoinTeam(u, team, eventTeams), nil
}

func itemOf(r *policy.Roster, u *model.User, t *model.Team, members int) TeamItem {
	return TeamItem{
		Team:        *t,
		MemberCount: members,
		IsMember:    r.IsTeamMember(u, t),
		CanManage:   r.CanManageTeam(u, t),
	}
}

func buildDetail(ctx context.Context, user *model.User, id string) (*TeamDetail, error) {
	team, err := st.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := st.ListTeamMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	roster, err := tool.RosterFor(ctx, st, user)
	if err != nil {
		return nil, err
	}

	d := &TeamDetail{TeamItem: itemOf(roster, user, team, len(members)), Members: make([]MemberItem, 0, len(members))}
	for _, m := range members {
		item := MemberItem{TeamMember: m}
		// 成员指向已删除的用户时只返回成员记录
		if u, err := st.GetUser(ctx, m.UserID); err == nil {
			item.FullName = u.DisplayName()
			item.Email = u.Email
		}
		d.Members = append(d.Members, item)
	}
	return d, nil
}
