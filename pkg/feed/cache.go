// Package feed holds the client-side presentation pipeline: the cached post
// listing, the search filter over it, and the card view derivation the
// templates render.
package feed

import (
	"sync"

	"feedclient/pkg/models"
)

// Cache is the in-memory copy of the most recent full listing, newest
// first. It is only ever replaced wholesale; mutations on the remote side
// are followed by a full re-fetch, never a partial update.
type Cache struct {
	mu    sync.Mutex
	posts []models.Post
}

func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps in a fresh listing.
func (c *Cache) Replace(posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = posts
}

// Posts returns a copy of the cached listing in its stored order.
func (c *Cache) Posts() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Find returns the cached post with the given id, if present.
func (c *Cache) Find(id int) (models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.posts)
}
