// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cludder

import (
	"context"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cludder/internal/model"
	"github.com/staranto/cludder/internal/render"
	"github.com/staranto/cludder/internal/transport"
)

// LoadProfile resolves the session id, exchanges it for the user's handle,
// shows the handle and then loads the user's own posts.
func (a *App) LoadProfile(ctx context.Context) *transport.Future {
	return a.shim.Send(ctx, FnAppProperty, a.property, func(resp transport.Response) {
		a.session = resp.Text()
		a.shim.Send(ctx, FnGetHandle, a.session, func(resp transport.Response) {
			a.nick = resp.Text()
			a.page.SetNick(a.nick)
			log.WithField("nick", a.nick).Debug("profile loaded")
			a.LoadMyPosts(ctx)
		})
	})
}

// Compose submits message, or the page input when message is empty. The
// confirmed post goes to the top of the list without a full re-render.
// Nothing is sent until LoadProfile has supplied a nickname; the returned
// Future is then already failed.
func (a *App) Compose(ctx context.Context, message string) *transport.Future {
	if a.nick == "" {
		log.WithField("fn", FnPost).Warn("no session nickname, post not sent")
		return transport.Refused(FnPost)
	}
	if message == "" {
		message = a.page.Input()
	}
	post := model.NewPost(message, a.now())
	req := model.PostRequest{Message: post.Message, Stamp: post.Stamp}

	return a.shim.Send(ctx, FnPost, req, func(resp transport.Response) {
		post.Key = resp.Text()
		post.Nick = a.nick
		key := a.cache.CachePost(post, a.nick)
		a.page.Prepend(render.Post(key, post))
		a.page.SetInput("")
	})
}

// Follow records that the user follows whom. Nothing is rendered.
func (a *App) Follow(ctx context.Context, whom string) *transport.Future {
	follow := model.Follow{Whom: whom}

	return a.shim.Send(ctx, FnFollow, model.FollowRequest{Whom: whom}, func(resp transport.Response) {
		follow.Key = resp.Text()
		a.cache.CacheFollow(follow)
	})
}

// LoadMyPosts resolves the session id again and loads the posts it authored.
func (a *App) LoadMyPosts(ctx context.Context) *transport.Future {
	return a.shim.Send(ctx, FnAppProperty, a.property, func(resp transport.Response) {
		a.LoadPosts(ctx, resp.Text())
	})
}

// LoadPosts fetches the posts authored by subject. Each post is cached under
// its author's handle once the handle is resolved, and the list is rebuilt
// after every one of them.
func (a *App) LoadPosts(ctx context.Context, subject string) *transport.Future {
	return a.shim.Send(ctx, FnGetPostsBy, subject, func(resp transport.Response) {
		entries := resp.JSON()
		if !entries.IsArray() {
			log.WithField("fn", FnGetPostsBy).Warnf("unexpected response: %s", resp)
			return
		}

		entries.ForEach(func(_, entry gjson.Result) bool {
			post, ok := parsePost(entry.Get("post"))
			if !ok {
				log.WithField("fn", FnGetPostsBy).Warnf("skipping malformed entry: %s", entry.Raw)
				return true
			}

			a.shim.Send(ctx, FnGetHandle, subject, func(resp transport.Response) {
				post.Nick = resp.Text()
				a.cache.CachePost(post, post.Nick)
				render.AllPosts(a.cache, a.page)
			})
			return true
		})
	})
}

// LoadUsers caches every user except the signed-in one.
func (a *App) LoadUsers(ctx context.Context) *transport.Future {
	req := model.GetRequest{What: model.WhatUsers}

	return a.shim.Send(ctx, FnGet, req, func(resp transport.Response) {
		for c := range rows(resp, model.WhatUsers) {
			nick := c.Get("nick")
			if nick.Type != gjson.String || nick.Str == "" {
				log.WithField("what", model.WhatUsers).Warnf("skipping malformed user: %s", c.Raw)
				continue
			}
			if nick.Str == a.nick {
				continue
			}
			a.cache.CacheUser(model.User{Nick: nick.Str})
		}
	})
}

// LoadFollows caches the follows recorded for whom.
func (a *App) LoadFollows(ctx context.Context, whom string) *transport.Future {
	req := model.GetRequest{What: model.WhatFollows, Whom: whom}

	return a.shim.Send(ctx, FnGet, req, func(resp transport.Response) {
		for c := range rows(resp, model.WhatFollows) {
			target := c.Get("whom")
			if target.Type != gjson.String || target.Str == "" {
				log.WithField("what", model.WhatFollows).Warnf("skipping malformed follow: %s", c.Raw)
				continue
			}
			a.cache.CacheFollow(model.Follow{Whom: target.Str, Key: c.Get("key").String()})
		}
	})
}
