package response

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
)

func TestErrorIsMatchesCode(t *testing.T) {
	e := ErrNotFound.WithOrigin(errors.New("row 7")).WithTips("event")
	assert.ErrorIs(t, e, ErrNotFound)
	assert.NotErrorIs(t, e, ErrAlreadyExists)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", e), ErrNotFound)
}

func TestWithOriginKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	e := ErrDatabase.WithOrigin(cause)

	assert.ErrorIs(t, e, cause)
	assert.NotNil(t, e.StackTrace())
	assert.Contains(t, e.Origin, "dial tcp: refused")
	// 码表中的实例不被修改
	assert.Empty(t, ErrDatabase.Origin)
	assert.Nil(t, ErrDatabase.Unwrap())
	assert.Same(t, ErrDatabase, ErrDatabase.WithOrigin(nil))
}

func TestWithTips(t *testing.T) {
	e := ErrInvalidRequest.WithOrigin(errors.New("bad")).WithTips("name 为空", "weight 越界")
	assert.Equal(t, "请求参数错误: name 为空; weight 越界", e.Message)
	assert.Equal(t, "请求参数错误", ErrInvalidRequest.Message)
	assert.NotEmpty(t, e.Origin)
	assert.Same(t, ErrInvalidRequest, ErrInvalidRequest.WithTips())
}

func TestFromStore(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want *Error
	}{
		{"not found", store.Fail("get_event", "1", store.ErrNotFound), ErrNotFound},
		{"conflict", store.Fail("add_user", "", store.ErrConflict), ErrAlreadyExists},
		{"one team per event", store.Fail("add_team_member", "3", store.AlreadyInEvent()), ErrAlreadyInTeam},
		{"backward status", store.Fail("update_event", "1", store.Invalid(model.ErrTransition)), ErrStatusTransition},
		{"invalid", store.Invalid(model.ErrEmptyName), ErrInvalidRequest},
		{"timeout", context.DeadlineExceeded, ErrStoreTimeout},
		{"other", errors.New("disk full"), ErrDatabase},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FromStore(c.err)
			require.NotNil(t, got)
			assert.Equal(t, c.want.Code, got.Code)
			assert.ErrorIs(t, got, c.err)
		})
	}
	assert.Nil(t, FromStore(nil))
}

func TestFromStoreInvalidCarriesReason(t *testing.T) {
	got := FromStore(store.Invalid(model.ErrEmptyName))
	assert.Contains(t, got.Message, model.ErrEmptyName.Error())
}
