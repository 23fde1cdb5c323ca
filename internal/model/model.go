// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package model holds the Cludder entities and the request payloads sent to
// the backend.
package model

import (
	"strconv"
	"time"
)

// Post is a single message. Key is assigned by the backend and is empty until
// a submit succeeds. Nick is the author's display handle.
type Post struct {
	Message string `json:"message" yaml:"message"`
	Stamp   int64  `json:"stamp" yaml:"stamp"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Nick    string `json:"nick,omitempty" yaml:"nick,omitempty"`
}

// NewPost builds an unsubmitted post stamped with t in epoch milliseconds.
func NewPost(message string, t time.Time) Post {
	return Post{
		Message: message,
		Stamp:   t.UnixMilli(),
	}
}

// Time converts the stamp back to a time.
func (p Post) Time() time.Time {
	return time.UnixMilli(p.Stamp)
}

// CacheKey is the composite key: stamp followed by the author discriminator.
func (p Post) CacheKey(discriminator string) string {
	return strconv.FormatInt(p.Stamp, 10) + discriminator
}

type User struct {
	Nick string `json:"nick" yaml:"nick"`
}

// Follow records that the session user follows Whom.
type Follow struct {
	Whom string `json:"whom" yaml:"whom"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// PostRequest is the "post" payload.
type PostRequest struct {
	Message string `url:"message"`
	Stamp   int64  `url:"stamp"`
}

// FollowRequest is the "follow" payload.
type FollowRequest struct {
	Whom string `url:"whom"`
}

// What values for GetRequest.
const (
	WhatUsers   = "users"
	WhatFollows = "follows"
)

// GetRequest is the generic "get" query payload.
type GetRequest struct {
	What string `url:"what"`
	Whom string `url:"whom,omitempty"`
}

// PostEntry is one element of the getPostsBy response.
type PostEntry struct {
	Post Post `json:"post"`
}
