// Package policy 集中定义访问控制与生命周期判定。
//
// 这里的函数都是纯函数：不做 I/O、不返回错误，对任何输入都有定义。
// 悬空引用（项目指向已删除的团队、事件为空等）一律按拒绝处理。
package policy

import "innovation-hub/internal/model"

// CanManageEvents 仅管理员可以创建、编辑、删除事件
func CanManageEvents(u *model.User) bool {
	return u.IsAdmin()
}

// CanTransitionEvent 事件状态只能沿 draft -> open -> closed 前进，原地不动视为允许
func CanTransitionEvent(from, to model.EventStatus) bool {
	return from.CanMoveTo(to)
}

// CanChangeEventStatus 状态变更同时要求管理员身份与前进方向
func CanChangeEventStatus(u *model.User, from, to model.EventStatus) bool {
	return CanManageEvents(u) && CanTransitionEvent(from, to)
}
