package service

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/postboard/blogapi/internal/post"
	"github.com/postboard/blogapi/internal/post/repository"
	"github.com/postboard/blogapi/pkg/metrics"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

var sortFields = map[string]bool{"title": true, "content": true, "author": true, "date": true}

// ListOptions selects ordering and the page window for List.
// An empty Sort keeps insertion order.
type ListOptions struct {
	Sort      string
	Direction string
	Page      int
	Limit     int
}

// SearchQuery filters posts; empty fields match everything.
type SearchQuery struct {
	Title   string
	Content string
	Author  string
	Date    string
}

// Notifier is told about every successful mutation.
type Notifier interface {
	PostChanged(eventType string, p post.Post)
}

// Service defines the post operations used by the handler layer.
type Service interface {
	List(opts ListOptions) ([]post.Post, error)
	Create(req post.CreateRequest) (post.Post, error)
	Update(id int, req post.UpdateRequest) (post.Post, error)
	Delete(id int) error
	Search(q SearchQuery) []post.Post
	Count() int
}

type Option func(*postService)

// WithNotifier registers n to receive lifecycle events.
func WithNotifier(n Notifier) Option {
	return func(s *postService) { s.notifier = n }
}

// WithClock overrides the time source used to stamp dates.
func WithClock(now func() time.Time) Option {
	return func(s *postService) { s.now = now }
}

// NewMemoryService returns a Service over a fresh repository holding the seed posts.
func NewMemoryService(opts ...Option) Service {
	return New(repository.NewMemoryRepo(post.Seed()...), opts...)
}

// New returns a Service backed by repo.
func New(repo *repository.MemoryRepo, opts ...Option) Service {
	s := &postService{repo: repo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	metrics.PostsStored.Set(float64(repo.Len()))
	return s
}

type postService struct {
	repo     *repository.MemoryRepo
	notifier Notifier
	now      func() time.Time
}

func (s *postService) List(opts ListOptions) ([]post.Post, error) {
	out, err := s.list(opts)
	observe("list", err)
	return out, err
}

func (s *postService) list(opts ListOptions) ([]post.Post, error) {
	if opts.Sort != "" && !sortFields[opts.Sort] {
		return nil, post.InvalidArgument(post.MsgInvalidSortField)
	}
	if opts.Direction != DirectionAsc && opts.Direction != DirectionDesc {
		return nil, post.InvalidArgument(post.MsgInvalidSortDirection)
	}
	posts := s.repo.Snapshot()
	if opts.Sort != "" {
		sorted, err := sortPosts(posts, opts.Sort, opts.Direction == DirectionDesc)
		if err != nil {
			return nil, err
		}
		posts = sorted
	}
	start := mulSat(subSat(opts.Page, 1), opts.Limit)
	end := mulSat(opts.Page, opts.Limit)
	return window(posts, start, end), nil
}

type sortItem struct {
	post post.Post
	text string
	date time.Time
}

// sortPosts orders a copy of posts by field. Equal keys keep their relative order in
// both directions.
func sortPosts(posts []post.Post, field string, desc bool) ([]post.Post, error) {
	items := make([]sortItem, len(posts))
	for i, p := range posts {
		items[i].post = p
		switch field {
		case "date":
			t, err := post.ParseDate(p.Date)
			if err != nil {
				return nil, post.InvalidArgument("Invalid date '%s' on post %d. Dates must use the format 'Month DD, YYYY'.", p.Date, p.ID)
			}
			items[i].date = t
		case "title":
			items[i].text = strings.ToLower(p.Title)
		case "content":
			items[i].text = strings.ToLower(p.Content)
		case "author":
			items[i].text = strings.ToLower(p.Author)
		}
	}
	less := func(a, b sortItem) bool {
		if field == "date" {
			return a.date.Before(b.date)
		}
		return a.text < b.text
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
	out := make([]post.Post, len(items))
	for i := range items {
		out[i] = items[i].post
	}
	return out, nil
}

// window returns posts[start:end] with sequence-slice semantics: negative bounds count
// from the end and out-of-range bounds are clamped, so the result may be empty but never fails.
func window(posts []post.Post, start, end int) []post.Post {
	n := len(posts)
	start, end = clampIndex(start, n), clampIndex(end, n)
	if start >= end {
		return []post.Post{}
	}
	return posts[start:end]
}

// mulSat multiplies a and b, pinning the result to math.MaxInt or math.MinInt when it
// would overflow. Pinned values clamp to the same slice bound as the exact product.
func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b == a && !(a == -1 && b == math.MinInt) && !(b == -1 && a == math.MinInt) {
		return p
	}
	if (a < 0) != (b < 0) {
		return math.MinInt
	}
	return math.MaxInt
}

func subSat(a, b int) int {
	if b > 0 && a < math.MinInt+b {
		return math.MinInt
	}
	return a - b
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

func (s *postService) Create(req post.CreateRequest) (post.Post, error) {
	if req.Title == nil || req.Content == nil {
		err := post.InvalidArgument(post.MsgTitleContentRequired)
		observe("create", err)
		return post.Post{}, err
	}
	author := post.DefaultAuthor
	if req.Author != nil {
		author = *req.Author
	}
	p, err := s.repo.Create(post.Post{
		Title:   *req.Title,
		Content: *req.Content,
		Author:  author,
		Date:    post.FormatDate(s.now()),
	})
	observe("create", err)
	if err != nil {
		return post.Post{}, err
	}
	s.changed(post.EventCreated, p)
	return p, nil
}

// Update replaces title, content and author. Unlike Create, author has no default.
func (s *postService) Update(id int, req post.UpdateRequest) (post.Post, error) {
	if req.Title == nil || req.Content == nil {
		err := post.InvalidArgument(post.MsgTitleContentRequired)
		observe("update", err)
		return post.Post{}, err
	}
	p, err := s.repo.Update(id, func(p *post.Post) error {
		if req.Author == nil {
			return post.MissingField(post.MsgAuthorRequired)
		}
		p.Title = *req.Title
		p.Content = *req.Content
		p.Author = *req.Author
		p.DateModified = post.FormatDate(s.now())
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		err = post.NotFound()
	}
	observe("update", err)
	if err != nil {
		return post.Post{}, err
	}
	s.changed(post.EventUpdated, p)
	return p, nil
}

func (s *postService) Delete(id int) error {
	removed, err := s.repo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		err = post.NotFound()
	}
	observe("delete", err)
	if err != nil {
		return err
	}
	s.changed(post.EventDeleted, removed)
	return nil
}

func (s *postService) Search(q SearchQuery) []post.Post {
	title := strings.ToLower(q.Title)
	content := strings.ToLower(q.Content)
	author := strings.ToLower(q.Author)

	out := []post.Post{}
	for _, p := range s.repo.Snapshot() {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(p.Content), content) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(p.Author), author) {
			continue
		}
		if q.Date != "" && q.Date != p.Date {
			continue
		}
		out = append(out, p)
	}
	observe("search", nil)
	return out
}

func (s *postService) Count() int {
	return s.repo.Len()
}

func (s *postService) changed(eventType string, p post.Post) {
	metrics.PostsStored.Set(float64(s.repo.Len()))
	if s.notifier != nil {
		s.notifier.PostChanged(eventType, p)
	}
}

func observe(op string, err error) {
	metrics.PostOperations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, post.ErrNotFound):
		return "not_found"
	case errors.Is(err, post.ErrInvalidArgument), errors.Is(err, post.ErrMissingField):
		return "invalid"
	default:
		return "error"
	}
}
