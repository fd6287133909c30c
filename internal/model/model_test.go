package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStatusOrder(t *testing.T) {
	assert.True(t, EventDraft.Before(EventOpen))
	assert.True(t, EventOpen.Before(EventClosed))
	assert.True(t, EventDraft.Before(EventClosed))
	assert.False(t, EventClosed.Before(EventOpen))
	assert.False(t, EventOpen.Before(EventOpen))
	assert.False(t, EventStatus("archived").Before(EventClosed))
	assert.False(t, EventStatus("archived").Valid())
}

func TestEventPatchPreservesUnsuppliedFields(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e := Event{
		Name:      "Innovation Challenge",
		Slogan:    Str("build"),
		StartTime: start,
		EndTime:   start.Add(24 * time.Hour),
		Status:    EventDraft,
	}
	status := EventOpen
	EventPatch{Status: &status, Slogan: Str("")}.Apply(&e)

	assert.Equal(t, "Innovation Challenge", e.Name)
	assert.Equal(t, EventOpen, e.Status)
	assert.Nil(t, e.Slogan)
	assert.Equal(t, start, e.StartTime)
}

func TestEventValidate(t *testing.T) {
	start := time.Now()
	e := Event{Name: "x", StartTime: start, EndTime: start, Status: EventDraft}
	require.ErrorIs(t, e.Validate(), ErrTimeRange)

	e.EndTime = start.Add(time.Hour)
	require.NoError(t, e.Validate())

	e.Name = ""
	require.ErrorIs(t, e.Validate(), ErrEmptyName)
}

func TestProjectPatchClearsAndSetsLinks(t *testing.T) {
	p := Project{CodeLink: Str("https://github.com/a/b"), DemoLink: Str("https://demo")}
	now := time.Now()
	ProjectPatch{CodeLink: Str(""), SlideLink: Str("https://slides"), SubmittedAt: &now}.Apply(&p)

	assert.Nil(t, p.CodeLink)
	assert.Equal(t, "https://slides", Deref(p.SlideLink))
	assert.Equal(t, "https://demo", Deref(p.DemoLink))
	require.NotNil(t, p.SubmittedAt)
	assert.True(t, p.Submitted())
}

func TestCriteriaNormalizeDefaults(t *testing.T) {
	c := Criteria{Name: "Creativity"}
	require.NoError(t, c.Normalize(nil, nil))
	assert.Equal(t, float64(1), c.Weight)
	assert.Equal(t, float64(10), c.MaxScore)

	zero := 0.0
	require.ErrorIs(t, c.Normalize(nil, &zero), ErrCriteria)
	negative := -1.0
	require.ErrorIs(t, c.Normalize(&negative, nil), ErrCriteria)
	require.NoError(t, c.Normalize(&zero, nil))
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Email: "duc.le@example.com"}
	assert.Equal(t, "duc.le", u.DisplayName())
	u.FullName = Str("Le Minh Duc")
	assert.Equal(t, "Le Minh Duc", u.DisplayName())
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}
