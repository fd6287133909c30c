package criteria

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
	m := &ModuleCriteria{}
	m.Init(deps)
	return test.NewRouter(m.InitRouter), deps
}

type listResp struct {
	Criteria    []model.Criteria `json:"criteria"`
	TotalWeight float64          `json:"total_weight"`
}

func TestListCriteria(t *testing.T) {
	r, deps := setup(t)
	token := test.Login(t, deps, test.MemberEmail)

	var out listResp
	test.Data(t, test.DoRequest(t, r, http.MethodGet, "/api/criteria/list?event_id=1", token, nil), &out)
	require.Len(t, out.Criteria, 4)
	assert.Equal(t, "Creativity", out.Criteria[0].Name)
	assert.InDelta(t, 10, out.TotalWeight, 1e-9)

	test.Data(t, test.DoRequest(t, r, http.MethodGet, "/api/criteria/list?event_id=2", token, nil), &out)
	assert.Empty(t, out.Criteria)
}

func TestCreateCriteriaDefaults(t *testing.T) {
	r, deps := setup(t)
	token := test.Login(t, deps, test.AdminEmail)

	var cr model.Criteria
	test.Data(t, test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", token, CriteriaCreateReq{EventID: "2", Name: "Presentation"}), &cr)
	assert.NotEmpty(t, cr.ID)
	assert.InDelta(t, model.DefaultCriteriaWeight, cr.Weight, 1e-9)
	assert.InDelta(t, model.DefaultCriteriaMaxScore, cr.MaxScore, 1e-9)

	var out listResp
	test.Data(t, test.DoRequest(t, r, http.MethodGet, "/api/criteria/list?event_id=2", token, nil), &out)
	assert.Len(t, out.Criteria, 1)
}

func TestCreateCriteriaValidation(t *testing.T) {
	r, deps := setup(t)
	admin := test.Login(t, deps, test.AdminEmail)
	zero := 0.0
	negative := -1.0

	resp := test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", admin, CriteriaCreateReq{EventID: "1", Name: "Bad", MaxScore: &zero})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", admin, CriteriaCreateReq{EventID: "1", Name: "Bad", Weight: &negative})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	// 权重为 0 是允许的
	var cr model.Criteria
	test.Data(t, test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", admin, CriteriaCreateReq{EventID: "1", Name: "Bonus", Weight: &zero}), &cr)
	assert.Zero(t, cr.Weight)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", admin, CriteriaCreateReq{EventID: "404", Name: "Ghost"})
	test.ErrorEqual(t, response.ErrNotFound, resp)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/criteria/create", test.Login(t, deps, test.LeaderEmail), CriteriaCreateReq{EventID: "1", Name: "Nope"})
	test.ErrorEqual(t, response.ErrForbidden, resp)
}
