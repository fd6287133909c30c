package event

import (
	"time"

	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
)

// EventCreateReq 创建事件的请求体
type EventCreateReq struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Slogan      *string           `json:"slogan" binding:"omitempty,max=255"`
	Description *string           `json:"description"`
	ImageURL    *string           `json:"image_url" binding:"omitempty,url"`
	StartTime   time.Time         `json:"start_time" binding:"required"`
	EndTime     time.Time         `json:"end_time" binding:"required"`
	Status      model.EventStatus `json:"status"` // 缺省为 draft
}

// EventUpdateReq 与 model.EventPatch 相同，nil 字段保持原值，空串清空可选字段
type EventUpdateReq struct {
	model.EventPatch
}

// EventItem 列表项附带团队与创意数量
type EventItem struct {
	model.Event
	TeamCount int `json:"team_count"`
	IdeaCount int `json:"idea_count"`
}

// ListEvents 所有登录用户都可以看到全部事件
func ListEvents(c *gin.Context) {
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

	teamCount := make(map[string]int)
	for _, t := range teams {
		teamCount[t.EventID]++
	}
	ideaCount := make(map[string]int)
	for _, i := range ideas {
		ideaCount[i.EventID]++
	}

	items := make([]EventItem, 0, len(events))
	for _, e := range events {
		items = append(items, EventItem{Event: e, TeamCount: teamCount[e.ID], IdeaCount: ideaCount[e.ID]})
	}
	total := len(items)
	if offset, limit, paged := tool.GetPage(c); paged {
		items = tool.Slice(items, offset, limit)
	}

	response.Success(c, gin.H{
		"events":     items,
		"total":      total,
		"can_manage": policy.CanManageEvents(user),
	})
}

// GetEvent 事件详情视图
func GetEvent(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	detail, err := buildDetail(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		tool.StoreFail(c, log, "获取事件详情失败", err, "id", c.Param("id"))
		return
	}
	response.Success(c, detail)
}

// CreateEvent 仅管理员
func CreateEvent(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	var req EventCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	created, err := st.AddEvent(c.Request.Context(), model.Event{
		Name:        req.Name,
		Slogan:      req.Slogan,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
		CreatedBy:   model.Str(user.ID),
	})
	if err != nil {
		tool.StoreFail(c, log, "创建事件失败", err, "name", req.Name)
		return
	}

	logger.WithRequest(log, c).Info("事件创建成功", "event_id", created.ID, "name", created.Name)
	response.Success(c, created)
}

// UpdateEvent 部分更新；状态只能沿 draft -> open -> closed 前进
func UpdateEvent(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	var req EventUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()

	if req.Status != nil {
		current, err := st.GetEvent(ctx, id)
		if err != nil {
			tool.StoreFail(c, log, "查询事件失败", err, "id", id)
			return
		}
		if !policy.CanChangeEventStatus(user, current.Status, *req.Status) {
			log.Warn("非法的事件状态变更", "id", id, "from", current.Status, "to", *req.Status)
			response.Fail(c, response.ErrStatusTransition.WithTips(string(current.Status)+" -> "+string(*req.Status)))
			return
		}
	}

	updated, err := st.UpdateEvent(ctx, id, req.EventPatch)
	if err != nil {
		tool.StoreFail(c, log, "更新事件失败", err, "id", id)
		return
	}
	logger.WithRequest(log, c).Info("事件更新成功", "event_id", id, "status", updated.Status)
	response.Success(c, updated)
}

// DeleteEvent 只删除事件本身，关联记录按悬空引用处理
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if err := st.DeleteEvent(c.Request.Context(), id); err != nil {
		tool.StoreFail(c, log, "删除事件失败", err, "id", id)
		return
	}
	logger.WithRequest(log, c).Info("事件删除成功", "event_id", id)
	response.Success(c)
}
