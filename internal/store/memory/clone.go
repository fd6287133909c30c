package memory

import (
	"time"

	"innovation-hub/internal/model"
)

// 读出与写入都经过深拷贝，调用方持有的指针字段不会与存储共享

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneUser(u model.User) model.User {
	u.FullName = cloneStr(u.FullName)
	return u
}

func cloneEvent(e model.Event) model.Event {
	e.Slogan = cloneStr(e.Slogan)
	e.Description = cloneStr(e.Description)
	e.ImageURL = cloneStr(e.ImageURL)
	e.CreatedBy = cloneStr(e.CreatedBy)
	return e
}

func cloneIdea(i model.Idea) model.Idea {
	i.Description = cloneStr(i.Description)
	return i
}

func cloneProject(p model.Project) model.Project {
	p.CodeLink = cloneStr(p.CodeLink)
	p.SlideLink = cloneStr(p.SlideLink)
	p.DemoLink = cloneStr(p.DemoLink)
	p.SubmittedAt = cloneTime(p.SubmittedAt)
	return p
}

func cloneCriteria(c model.Criteria) model.Criteria {
	c.Description = cloneStr(c.Description)
	return c
}

func cloneJudgeScore(s model.JudgeScore) model.JudgeScore {
	s.SubmittedAt = cloneTime(s.SubmittedAt)
	return s
}

func same[T any](v T) T { return v }

// filter 复制满足条件的元素，保持插入顺序；结果永不为 nil
func filter[T any](src []T, keep func(*T) bool, clone func(T) T) []T {
	out := make([]T, 0, len(src))
	for i := range src {
		if keep == nil || keep(&src[i]) {
			out = append(out, clone(src[i]))
		}
	}
	return out
}

func find[T any](src []T, match func(*T) bool) int {
	for i := range src {
		if match(&src[i]) {
			return i
		}
	}
	return -1
}
