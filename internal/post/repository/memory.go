package repository

import (
	"errors"
	"sync"

	"github.com/postboard/blogapi/internal/post"
)

var (
	ErrNotFound = errors.New("post not found")
)

// MemoryRepo keeps posts in insertion order behind a RWMutex.
// Ids come from a counter that only moves forward, so a deleted id is never handed out again.
type MemoryRepo struct {
	mu     sync.RWMutex
	posts  []post.Post
	nextID int
}

// NewMemoryRepo returns a repo holding copies of the given posts.
func NewMemoryRepo(seed ...post.Post) *MemoryRepo {
	m := &MemoryRepo{posts: make([]post.Post, 0, len(seed)), nextID: 1}
	for _, p := range seed {
		m.posts = append(m.posts, p)
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

// Create assigns the next id to p, appends it and returns the stored copy.
func (m *MemoryRepo) Create(p post.Post) (post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.posts = append(m.posts, p)
	return p, nil
}

// Snapshot returns a copy of the collection in insertion order.
func (m *MemoryRepo) Snapshot() []post.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]post.Post, len(m.posts))
	copy(out, m.posts)
	return out
}

// Update runs fn against the first post with the given id while holding the write lock.
// Changes made by fn are kept only when it returns nil.
func (m *MemoryRepo) Update(id int, fn func(p *post.Post) error) (post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return post.Post{}, ErrNotFound
	}
	p := m.posts[i]
	if err := fn(&p); err != nil {
		return post.Post{}, err
	}
	p.ID = id
	m.posts[i] = p
	return p, nil
}

// Delete removes the first post with the given id and returns it.
func (m *MemoryRepo) Delete(id int) (post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return post.Post{}, ErrNotFound
	}
	removed := m.posts[i]
	m.posts = append(m.posts[:i], m.posts[i+1:]...)
	return removed, nil
}

// Len returns the number of stored posts.
func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts)
}

func (m *MemoryRepo) indexOf(id int) int {
	for i := range m.posts {
		if m.posts[i].ID == id {
			return i
		}
	}
	return -1
}
