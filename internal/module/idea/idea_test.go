package idea

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/internal/app"
	"innovation-hub/internal/global/response"
	"innovation-hub/internal/model"
	"innovation-hub/test"
)

func setup(t *testing.T) (*gin.Engine, *app.Deps) {
	t.Helper()
	deps := test.NewDeps(t)
	m := &ModuleIdea{}
	m.Init(deps)
	return test.NewRouter(m.InitRouter), deps
}

func TestListIdeas(t *testing.T) {
	r, deps := setup(t)

	var out struct {
		Ideas     []IdeaItem `json:"ideas"`
		CanReview bool       `json:"can_review"`
	}
	test.Data(t, test.DoRequest(t, r, http.MethodGet, "/api/idea/list?event_id=1", test.Login(t, deps, test.LeaderEmail), nil), &out)
	require.Len(t, out.Ideas, 3)
	assert.False(t, out.CanReview)
	assert.True(t, out.Ideas[0].IsAuthor)
	assert.Equal(t, "Tran Thi User", out.Ideas[0].AuthorName)

	test.Data(t, test.DoRequest(t, r, http.MethodGet, "/api/idea/list?event_id=2", test.Login(t, deps, test.AdminEmail), nil), &out)
	assert.Empty(t, out.Ideas)
	assert.True(t, out.CanReview)
}

func TestCreateIdea(t *testing.T) {
	r, deps := setup(t)
	token := test.Login(t, deps, test.OtherEmail)

	var idea model.Idea
	test.Data(t, test.DoRequest(t, r, http.MethodPost, "/api/idea/create", token, IdeaCreateReq{EventID: "1", Title: "Smart queue"}), &idea)
	assert.Equal(t, model.ReviewPending, idea.Status)
	assert.Equal(t, "4", idea.UserID)

	resp := test.DoRequest(t, r, http.MethodPost, "/api/idea/create", token, IdeaCreateReq{EventID: "2", Title: "Too early"})
	test.ErrorEqual(t, response.ErrEventNotOpen, resp)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/idea/create", token, map[string]string{"event_id": "1"})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}

func TestReviewIdea(t *testing.T) {
	r, deps := setup(t)
	req := ReviewReq{Status: model.ReviewRejected}

	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, r, http.MethodPut, "/api/idea/review/3", test.Login(t, deps, test.OtherEmail), req))

	var idea model.Idea
	test.Data(t, test.DoRequest(t, r, http.MethodPut, "/api/idea/review/3", test.Login(t, deps, test.AdminEmail), req), &idea)
	assert.Equal(t, model.ReviewRejected, idea.Status)

	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodPut, "/api/idea/review/99", test.Login(t, deps, test.AdminEmail), req))
}
