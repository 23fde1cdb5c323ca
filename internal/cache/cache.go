// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"iter"
	"maps"
	"slices"

	"github.com/staranto/cludder/internal/model"
)

// Cache is not safe for concurrent use. It is only touched from completion
// callbacks, which run one at a time on the transport loop.
type Cache struct {
	posts   map[string]model.Post
	users   map[string]model.User
	follows map[string]model.Follow
}

func New() *Cache {
	return &Cache{
		posts:   make(map[string]model.Post),
		users:   make(map[string]model.User),
		follows: make(map[string]model.Follow),
	}
}

// CachePost stores p under stamp+discriminator and returns that key. A post
// already at the key is replaced.
func (c *Cache) CachePost(p model.Post, discriminator string) string {
	key := p.CacheKey(discriminator)
	c.posts[key] = p
	return key
}

// CacheUser stores u under its nick, replacing any earlier entry.
func (c *Cache) CacheUser(u model.User) {
	c.users[u.Nick] = u
}

// CacheFollow stores f under the followed nick, replacing any earlier entry.
func (c *Cache) CacheFollow(f model.Follow) {
	c.follows[f.Whom] = f
}

func (c *Cache) Post(key string) (model.Post, bool) {
	p, ok := c.posts[key]
	return p, ok
}

func (c *Cache) User(nick string) (model.User, bool) {
	u, ok := c.users[nick]
	return u, ok
}

func (c *Cache) Follow(whom string) (model.Follow, bool) {
	f, ok := c.follows[whom]
	return f, ok
}

// Posts iterates the post cache in no particular order.
func (c *Cache) Posts() iter.Seq2[string, model.Post] {
	return maps.All(c.posts)
}

func (c *Cache) Users() iter.Seq2[string, model.User] {
	return maps.All(c.users)
}

func (c *Cache) Follows() iter.Seq2[string, model.Follow] {
	return maps.All(c.follows)
}

// PostKeys returns every post key, unsorted.
func (c *Cache) PostKeys() []string {
	return slices.Collect(maps.Keys(c.posts))
}

func (c *Cache) LenPosts() int   { return len(c.posts) }
func (c *Cache) LenUsers() int   { return len(c.users) }
func (c *Cache) LenFollows() int { return len(c.follows) }
