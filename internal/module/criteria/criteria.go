package criteria

import (
	"github.com/gin-gonic/gin"

	"innovation-hub/internal/global/logger"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/internal/module/tool"
)

// CriteriaCreateReq weight 与 max_score 缺省时分别取 1 和 10
type CriteriaCreateReq struct {
	EventID     string   `json:"event_id" binding:"required"`
	Name        string   `json:"name" binding:"required,max=100"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"`
	MaxScore    *float64 `json:"max_score"`
}

func ListCriteria(c *gin.Context) {
	list, err := st.ListCriteria(c.Request.Context(), c.Query("event_id"))
	if err != nil {
		tool.StoreFail(c, log, "获取评分维度失败", err)
		return
	}
	var total float64
	for _, cr := range list {
		total += cr.Weight
	}
	response.Success(c, gin.H{
		"criteria":     list,
		"total_weight": total,
	})
}

func CreateCriteria(c *gin.Context) {
	var req CriteriaCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	ctx := c.Request.Context()

	if _, err := st.GetEvent(ctx, req.EventID); err != nil {
		tool.StoreFail(c, log, "查询事件失败", err, "event_id", req.EventID)
		return
	}

	cr := model.Criteria{
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := cr.Normalize(req.Weight, req.MaxScore); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err).WithTips(err.Error()))
		return
	}
	created, err := st.AddCriteria(ctx, cr)
	if err != nil {
		tool.StoreFail(c, log, "创建评分维度失败", err, "name", req.Name)
		return
	}
	logger.WithRequest(log, c).Info("评分维度创建成功", "criteria_id", created.ID, "event_id", created.EventID)
	response.Success(c, created)
}
