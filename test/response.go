package test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"innovation-hub/internal/global/response"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code, resp.Msg)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	t.Helper()
	require.Equal(t, int32(200), resp.Code, resp.Msg)
}

// Data 把响应中的 data 解码到 out
func Data(t *testing.T, resp response.ResponseBody, out any) {
	t.Helper()
	NoError(t, resp)
	b, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}
