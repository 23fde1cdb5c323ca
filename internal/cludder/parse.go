// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cludder

import (
	"iter"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cludder/internal/model"
	"github.com/staranto/cludder/internal/transport"
)

func parsePost(v gjson.Result) (model.Post, bool) {
	if !v.IsObject() {
		return model.Post{}, false
	}
	stamp := v.Get("stamp")
	if !stamp.Exists() {
		return model.Post{}, false
	}
	return model.Post{
		Message: v.Get("message").String(),
		Stamp:   stamp.Int(),
		Key:     v.Get("key").String(),
	}, true
}

// rows yields the decoded C document of every entry in a "get" response.
// Entries that do not carry a JSON object are logged and skipped.
func rows(resp transport.Response, what string) iter.Seq[gjson.Result] {
	return func(yield func(gjson.Result) bool) {
		entries := resp.JSON()
		if !entries.IsArray() {
			log.WithField("what", what).Warnf("unexpected response: %s", resp)
			return
		}
		for _, entry := range entries.Array() {
			c := entry.Get("C")
			doc := c
			if c.Type == gjson.String {
				doc = gjson.Parse(c.Str)
			}
			if !doc.IsObject() {
				log.WithField("what", what).Warnf("skipping entry: %s", entry.Raw)
				continue
			}
			if !yield(doc) {
				return
			}
		}
	}
}
