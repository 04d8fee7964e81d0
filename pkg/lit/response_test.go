package lit

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponse(meta map[string]interface{}) (*Response, *fakeResponse) {
	raw := &fakeResponse{headers: map[string]string{}}
	return NewResponse(raw, meta), raw
}

func TestResponse_Success(t *testing.T) {
	res, raw := newTestResponse(nil)

	require.NoError(t, res.Success(map[string]string{"message": "hi"}))

	assert.Equal(t, http.StatusOK, raw.status)
	assert.JSONEq(t, `{"message":"hi"}`, raw.body)
	assert.Equal(t, "application/json; charset=utf-8", raw.headers["Content-Type"])
}

func TestResponse_SuccessWithStatus(t *testing.T) {
	res, raw := newTestResponse(nil)
	require.NoError(t, res.Success("accepted", http.StatusAccepted))
	assert.Equal(t, http.StatusAccepted, raw.status)

	res, raw = newTestResponse(nil)
	require.NoError(t, res.Created(map[string]int{"id": 1}))
	assert.Equal(t, http.StatusCreated, raw.status)
}

func TestResponse_NilBodyUsesDefault(t *testing.T) {
	res, raw := newTestResponse(nil)
	require.NoError(t, res.Success(nil))
	assert.Equal(t, http.StatusOK, raw.status)
	assert.JSONEq(t, `{"code":200,"message":"OK"}`, raw.body)

	res, raw = newTestResponse(nil)
	require.NoError(t, res.Created(nil))
	assert.Equal(t, http.StatusCreated, raw.status)
	assert.JSONEq(t, `{"code":201,"message":"Created"}`, raw.body)
}

func TestResponse_Errored(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       []interface{}
		wantStatus int
		wantBody   string
	}{
		{"default body", http.StatusNotFound, nil, 404, `{"code":404,"message":"Not Found"}`},
		{"zero status", 0, nil, 500, `{"code":500,"message":"Internal Server Error"}`},
		{"nil body", http.StatusConflict, []interface{}{nil}, 409, `{"code":409,"message":"Conflict"}`},
		{"custom body", http.StatusBadRequest, []interface{}{map[string]string{"error": "bad"}}, 400, `{"error":"bad"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, raw := newTestResponse(nil)
			require.NoError(t, res.Errored(tt.status, tt.body...))
			assert.Equal(t, tt.wantStatus, raw.status)
			assert.JSONEq(t, tt.wantBody, raw.body)
		})
	}
}

func TestResponse_Produces(t *testing.T) {
	res, raw := newTestResponse(map[string]interface{}{ProducesKey: "application/vnd.messages.v1+json"})

	require.NoError(t, res.Success(map[string]string{"message": "123"}))

	assert.Equal(t, "application/vnd.messages.v1+json", res.Produces())
	assert.Equal(t, "application/vnd.messages.v1+json; charset=utf-8", raw.headers["Content-Type"])
}

func TestContentType(t *testing.T) {
	tests := []struct {
		produces string
		want     string
	}{
		{"", "application/json; charset=utf-8"},
		{"text/csv", "text/csv; charset=utf-8"},
		{"text/plain; charset=iso-8859-1", "text/plain; charset=iso-8859-1"},
		{"application/vnd.messages.v1+json", "application/vnd.messages.v1+json; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.produces, func(t *testing.T) {
			assert.Equal(t, tt.want, contentType(tt.produces))
		})
	}
}

func TestHandleError_SkipsWrittenResponses(t *testing.T) {
	res := &fakeResponse{headers: map[string]string{}}
	ctx := &fakeContext{res: res, values: map[string]interface{}{}}
	require.NoError(t, res.JSON(http.StatusOK, "done"))

	require.NoError(t, HandleError(ctx, NewHTTPError(http.StatusBadGateway)))

	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, 1, res.writes)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusOf(nil))
	assert.Equal(t, http.StatusTeapot, StatusOf(NewHTTPError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(assert.AnError))
}
