// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backendtest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cludder/internal/model"
)

func post(t *testing.T, s *Server, fn, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(s.URL+"/fn/cludder/"+fn, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(b))
}

func TestServer(t *testing.T) {
	s := New(t)
	s.Handles["sid"] = "alice"
	s.Keys = []string{"k1"}
	s.Users = []model.User{{Nick: "bob"}}
	s.Fail["follow"] = http.StatusBadGateway

	tests := []struct {
		name     string
		fn       string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "handle", fn: "getHandle", body: "sid", wantCode: 200, wantBody: `"alice"`},
		{name: "unknown handle", fn: "getHandle", body: "nope", wantCode: 404},
		{name: "queued key", fn: "post", body: "message=hi&stamp=1", wantCode: 200, wantBody: `"k1"`},
		{name: "generated key", fn: "post", body: "message=hi&stamp=2", wantCode: 200, wantBody: `"p2"`},
		{name: "users", fn: "get", body: "what=users", wantCode: 200, wantBody: `[{"C":"{\"nick\":\"bob\"}"}]`},
		{name: "failure", fn: "follow", body: "whom=bob", wantCode: http.StatusBadGateway},
		{name: "unknown function", fn: "nope", wantCode: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := post(t, s, tt.fn, tt.body)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}

	assert.Len(t, s.Calls("post"), 2)
	assert.Equal(t, "bob", s.Calls("follow")[0].Form().Get("whom"))
	assert.Len(t, s.Calls(""), len(tests))
}

func TestServer_WrapPosts(t *testing.T) {
	s := New(t)
	s.Posts["sid"] = []model.Post{{Message: "hi", Stamp: 1}}
	s.WrapPosts = true

	_, body := post(t, s, "getPostsBy", "sid")
	assert.Equal(t, `"[{\"post\":{\"message\":\"hi\",\"stamp\":1}}]"`, body)
}
