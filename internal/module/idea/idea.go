package idea

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
	"innovation-hub/internal/policy"
)

type IdeaCreateReq struct {
	EventID     string  `json:"event_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
}

type ReviewReq struct {
	Status model.ReviewStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

type IdeaItem struct {
	model.Idea
	AuthorName string `json:"author_name"`
	IsAuthor   bool   `json:"is_author"`
}

func ListIdeas(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	ideas, err := st.ListIdeas(ctx, c.Query("event_id"))
	if err != nil {
		tool.StoreFail(c, log, "获取创意列表失败", err)
		return
	}
	users, err := st.ListUsers(ctx)
	if err != nil {
		tool.StoreFail(c, log, "获取用户列表失败", err)
		return
	}
	userByID := tool.Index(users, func(u *model.User) string { return u.ID })

	items := make([]IdeaItem, 0, len(ideas))
	for _, i := range ideas {
		items = append(items, IdeaItem{
			Idea:       i,
			AuthorName: userByID[i.UserID].DisplayName(),
			IsAuthor:   i.UserID == user.ID,
		})
	}
	response.Success(c, gin.H{
		"ideas":      items,
		"can_review": policy.CanManageEvents(user),
	})
}

// CreateIdea 只能向 open 状态的事件提交创意，初始状态为 pending
func CreateIdea(c *gin.Context) {
	user, ok := tool.CurrentUser(c)
	if !ok {
		return
	}
	var req IdeaCreateReq
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

	idea, err := st.AddIdea(ctx, model.Idea{
		EventID:     event.ID,
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		tool.StoreFail(c, log, "创建创意失败", err, "title", req.Title)
		return
	}
	logger.WithRequest(log, c).Info("创意提交成功", "idea_id", idea.ID, "event_id", event.ID)
	response.Success(c, idea)
}

func ReviewIdea(c *gin.Context) {
	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	id := c.Param("id")
	idea, err := st.SetIdeaStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		tool.StoreFail(c, log, "审核创意失败", err, "id", id)
		return
	}
	logger.WithRequest(log, c).Info("创意审核", "idea_id", id, "status", req.Status)
	response.Success(c, idea)
}
