// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package backendtest serves a scripted Cludder backend for tests.
package backendtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/staranto/cludder/internal/model"
)

// Call is one request the server received.
type Call struct {
	Function string
	Body     string
}

// Form decodes the body as form values.
func (c Call) Form() url.Values {
	v, _ := url.ParseQuery(c.Body)
	return v
}

// Server answers /fn/cludder/<fn> from its fields. Set them before the code
// under test makes its first call.
type Server struct {
	*httptest.Server

	// Properties answers appProperty by property name.
	Properties map[string]string
	// Handles answers getHandle by session id.
	Handles map[string]string
	// Posts answers getPostsBy by subject.
	Posts map[string][]model.Post
	// Users answers get what=users.
	Users []model.User
	// Follows answers get what=follows by whom.
	Follows map[string][]model.Follow
	// Keys are handed out in order by post and follow. Once exhausted keys
	// are generated.
	Keys []string
	// Fail maps a function to the status it fails with.
	Fail map[string]int
	// WrapPosts encodes the getPostsBy array as a JSON string.
	WrapPosts bool
	// Raw answers fn with a verbatim body, ahead of everything but Fail.
	Raw map[string]string
	// Hold, when set, keeps every request waiting until Release. Test
	// cleanup releases it.
	Hold chan struct{}

	mu    sync.Mutex
	once  sync.Once
	calls []Call
	seq   int
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		Properties: map[string]string{},
		Handles:    map[string]string{},
		Posts:      map[string][]model.Post{},
		Follows:    map[string][]model.Follow{},
		Fail:       map[string]int{},
		Raw:        map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	t.Cleanup(s.Release)
	return s
}

// Release lets held requests through. It is safe to call more than once.
func (s *Server) Release() {
	s.once.Do(func() {
		if s.Hold != nil {
			close(s.Hold)
		}
	})
}

// Calls returns the received requests for fn, or all of them when fn is
// empty.
func (s *Server) Calls(fn string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.calls {
		if fn == "" || c.Function == fn {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	fn, ok := strings.CutPrefix(r.URL.Path, "/fn/cludder/")
	if !ok || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body := string(raw)

	if s.Hold != nil {
		<-s.Hold
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Function: fn, Body: body})

	if code, ok := s.Fail[fn]; ok {
		http.Error(w, fn+" failed", code)
		return
	}
	if raw, ok := s.Raw[fn]; ok {
		_, _ = io.WriteString(w, raw)
		return
	}

	switch fn {
	case "appProperty":
		s.text(w, s.Properties, body)
	case "getHandle":
		s.text(w, s.Handles, body)
	case "post", "follow":
		s.seq++
		key := fn[:1] + strconv.Itoa(s.seq)
		if len(s.Keys) > 0 {
			key, s.Keys = s.Keys[0], s.Keys[1:]
		}
		writeJSON(w, key)
	case "getPostsBy":
		entries := make([]model.PostEntry, 0, len(s.Posts[body]))
		for _, p := range s.Posts[body] {
			entries = append(entries, model.PostEntry{Post: p})
		}
		if s.WrapPosts {
			b, _ := json.Marshal(entries)
			writeJSON(w, string(b))
			return
		}
		writeJSON(w, entries)
	case "get":
		form, _ := url.ParseQuery(body)
		switch form.Get("what") {
		case model.WhatUsers:
			writeJSON(w, wrapC(s.Users))
		case model.WhatFollows:
			writeJSON(w, wrapC(s.Follows[form.Get("whom")]))
		default:
			http.Error(w, "unknown what", http.StatusBadRequest)
		}
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) text(w http.ResponseWriter, m map[string]string, key string) {
	v, ok := m[key]
	if !ok {
		http.Error(w, fmt.Sprintf("no value for %q", key), http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

// wrapC mirrors the datastore rows: each item is a JSON string in field C.
func wrapC[T any](items []T) []map[string]string {
	out := make([]map[string]string, 0, len(items))
	for _, it := range items {
		b, _ := json.Marshal(it)
		out = append(out, map[string]string{"C": string(b)})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
