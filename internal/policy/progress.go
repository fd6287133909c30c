package policy

import (
	"math"

	"innovation-hub/internal/model"
)

// ProgressRatio completed/total，total 为 0 时定义为 0；结果限制在 [0,1]
func ProgressRatio(completed, total int) float64 {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 1
	}
	return float64(completed) / float64(total)
}

// Percent 用于整数百分比展示：round(100*completed/total)
func Percent(completed, total int) int {
	return int(math.Round(100 * ProgressRatio(completed, total)))
}

// LinkProgress 三个提交链接中已填写的数量
func LinkProgress(p *model.Project) (done, total int) {
	total = 3
	if p == nil {
		return 0, total
	}
	for _, link := range p.Links() {
		if model.Deref(link) != "" {
			done++
		}
	}
	return done, total
}

// SubmissionTransition 决定本次保存是否(重新)写入 submitted_at。
// 显式提交或至少包含一个链接时进入 submitted；已提交的项目再次保存只刷新时间，
// 不存在回到未提交的路径
func SubmissionTransition(alreadySubmitted, hasLinks, explicit bool) bool {
	return alreadySubmitted || hasLinks || explicit
}
