package memory

import (
	"context"
	"sync"
	"time"

	"innovation-hub/internal/model"
	"innovation-hub/tools"
)

// DemoPassword 演示账号的统一密码，仅 local 身份提供方可用
const DemoPassword = "innovation2024"

var (
	demoHash     string
	demoHashOnce sync.Once
)

func demoPasswordHash() string {
	demoHashOnce.Do(func() {
		demoHash = tools.PasswordEncrypt(DemoPassword)
	})
	return demoHash
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	tools.PanicOnErr(err)
	return t
}

func atPtr(s string) *time.Time {
	t := at(s)
	return &t
}

// Seed 写入演示数据：两个事件、四个用户（一名管理员）、三个团队及其成员、
// 三个创意、两个项目（一个已提交）以及评分维度与评委记录
func Seed(s *Store) error {
	ctx := context.Background()
	hash := demoPasswordHash()

	users := []model.User{
		{Model: model.Model{ID: "1", CreatedAt: at("2024-01-01T00:00:00Z")}, FullName: model.Str("Nguyen Van Admin"), Email: "admin@teko.vn", Role: model.RoleAdmin},
		{Model: model.Model{ID: "2", CreatedAt: at("2024-01-02T00:00:00Z")}, FullName: model.Str("Tran Thi User"), Email: "user@teko.vn", Role: model.RoleUser},
		{Model: model.Model{ID: "3", CreatedAt: at("2024-01-03T00:00:00Z")}, FullName: model.Str("Le Minh Duc"), Email: "duc.le@teko.vn", Role: model.RoleUser},
		{Model: model.Model{ID: "4", CreatedAt: at("2024-01-04T00:00:00Z")}, FullName: model.Str("Pham Thu Huong"), Email: "huong.pham@teko.vn", Role: model.RoleUser},
	}
	for _, u := range users {
		u.PasswordHash = hash
		if _, err := s.AddUser(ctx, u); err != nil {
			return err
		}
	}

	events := []model.Event{
		{
			Model:       model.Model{ID: "1", CreatedAt: at("2024-02-01T00:00:00Z")},
			Name:        "Teko Innovation Challenge 2024",
			Slogan:      model.Str("Spark creativity, build the future"),
			Description: model.Str("An innovation contest for Teko employees looking for breakthrough ideas and creative solutions to business challenges."),
			ImageURL:    model.Str("https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg"),
			StartTime:   at("2024-03-01T09:00:00Z"),
			EndTime:     at("2024-03-30T18:00:00Z"),
			Status:      model.EventOpen,
			CreatedBy:   model.Str("1"),
		},
		{
			Model:       model.Model{ID: "2", CreatedAt: at("2024-02-15T00:00:00Z")},
			Name:        "AI Hackathon 2024",
			Slogan:      model.Str("Artificial intelligence within reach"),
			Description: model.Str("Build AI applications for e-commerce and fintech."),
			ImageURL:    model.Str("https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg"),
			StartTime:   at("2024-04-15T09:00:00Z"),
			EndTime:     at("2024-04-20T18:00:00Z"),
			Status:      model.EventDraft,
			CreatedBy:   model.Str("1"),
		},
	}
	for _, e := range events {
		if _, err := s.AddEvent(ctx, e); err != nil {
			return err
		}
	}

	criteria := []model.Criteria{
		{ID: "1", EventID: "1", Name: "Creativity", Description: model.Str("How original and inventive the idea is"), Weight: 3, MaxScore: 10},
		{ID: "2", EventID: "1", Name: "Feasibility", Description: model.Str("How realistic the implementation is"), Weight: 2, MaxScore: 10},
		{ID: "3", EventID: "1", Name: "Business impact", Description: model.Str("Positive impact on business operations"), Weight: 3, MaxScore: 10},
		{ID: "4", EventID: "1", Name: "Technical execution", Description: model.Str("Code quality and product demo"), Weight: 2, MaxScore: 10},
	}
	for _, c := range criteria {
		if _, err := s.AddCriteria(ctx, c); err != nil {
			return err
		}
	}

	ideas := []model.Idea{
		{Model: model.Model{ID: "1", CreatedAt: at("2024-02-05T00:00:00Z")}, EventID: "1", UserID: "2", Title: "Customer support AI chatbot", Description: model.Str("A 24/7 chatbot that understands natural language."), Status: model.ReviewApproved},
		{Model: model.Model{ID: "2", CreatedAt: at("2024-02-06T00:00:00Z")}, EventID: "1", UserID: "3", Title: "Market trend prediction", Description: model.Str("Machine learning to forecast e-commerce trends."), Status: model.ReviewApproved},
		{Model: model.Model{ID: "3", CreatedAt: at("2024-02-07T00:00:00Z")}, EventID: "1", UserID: "4", Title: "Personal finance app", Description: model.Str("Track spending and invest smarter."), Status: model.ReviewPending},
	}
	for _, i := range ideas {
		if _, err := s.AddIdea(ctx, i); err != nil {
			return err
		}
	}

	teams := []model.Team{
		{Model: model.Model{ID: "1", CreatedAt: at("2024-02-10T00:00:00Z")}, EventID: "1", Name: "Tech Innovators", Status: model.ReviewApproved},
		{Model: model.Model{ID: "2", CreatedAt: at("2024-02-11T00:00:00Z")}, EventID: "1", Name: "AI Masters", Status: model.ReviewApproved},
		{Model: model.Model{ID: "3", CreatedAt: at("2024-02-12T00:00:00Z")}, EventID: "1", Name: "Future Builders", Status: model.ReviewPending},
	}
	for _, t := range teams {
		if _, err := s.AddTeam(ctx, t); err != nil {
			return err
		}
	}

	members := []model.TeamMember{
		{ID: "1", TeamID: "1", UserID: "2", Role: model.MemberLeader},
		{ID: "2", TeamID: "1", UserID: "3", Role: model.MemberMember},
		{ID: "3", TeamID: "2", UserID: "4", Role: model.MemberLeader},
	}
	for _, m := range members {
		if _, err := s.AddTeamMember(ctx, m); err != nil {
			return err
		}
	}

	projects := []model.Project{
		{
			ID: "1", EventID: "1", TeamID: "1", IdeaID: "1",
			ScheduledTime: at("2024-03-25T14:00:00Z"),
			CodeLink:      model.Str("https://github.com/team1/ai-chatbot"),
			SlideLink:     model.Str("https://docs.google.com/presentation/d/abc123"),
			DemoLink:      model.Str("https://demo.team1.com"),
			SubmittedAt:   atPtr("2024-03-24T16:30:00Z"),
		},
		{ID: "2", EventID: "1", TeamID: "2", IdeaID: "2", ScheduledTime: at("2024-03-25T15:00:00Z")},
	}
	for _, p := range projects {
		if _, err := s.AddProject(ctx, p); err != nil {
			return err
		}
	}

	s.AddJudge(model.Judge{ID: "1", EventID: "1", UserID: "1"})
	s.AddJudgeScore(model.JudgeScore{ID: "1", ProjectID: "1", JudgeID: "1", SubmittedAt: atPtr("2024-03-25T16:00:00Z"), TotalScore: 85})
	return nil
}

// NewSeeded 返回已写入演示数据的存储
func NewSeeded() (*Store, error) {
	s := New()
	if err := Seed(s); err != nil {
		return nil, err
	}
	return s, nil
}
