package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postboard/blogapi/internal/post"
	"github.com/postboard/blogapi/internal/post/service"
	"github.com/postboard/blogapi/pkg/logger"
)

// RegisterPostRoutes mounts the posts API on r.
func RegisterPostRoutes(r gin.IRouter, svc service.Service) {
	h := &Handler{svc: svc}
	r.GET("/api/posts", h.List)
	r.POST("/api/posts", h.Create)
	r.GET("/api/posts/search", h.Search)
	r.PUT("/api/posts/:id", h.Update)
	r.DELETE("/api/posts/:id", h.Delete)
}

type Handler struct {
	svc service.Service
}

// List handles GET /api/posts?sort=&direction=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	opts := service.ListOptions{
		Sort:      c.Query("sort"),
		Direction: c.DefaultQuery("direction", service.DirectionAsc),
		Page:      queryInt(c, "page", service.DefaultPage),
		Limit:     queryInt(c, "limit", service.DefaultLimit),
	}
	posts, err := h.svc.List(opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create handles POST /api/posts with {title, content, author?}
func (h *Handler) Create(c *gin.Context) {
	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("create post: bad body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": post.MsgTitleContentRequired})
		return
	}
	p, err := h.svc.Create(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post added successfully.", "post": p})
}

// Update handles PUT /api/posts/:id with {title, content, author}
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": post.MsgPostNotFound})
		return
	}
	var req post.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debugf("update post %d: bad body: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": post.MsgTitleContentRequired})
		return
	}
	p, err := h.svc.Update(id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Post with id %d updated successfully.", id), "post": p})
}

// Delete handles DELETE /api/posts/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": post.MsgPostNotFound})
		return
	}
	if err := h.svc.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Post with %d deleted successfully.", id)})
}

// Search handles GET /api/posts/search?title=&content=&author=&date=
func (h *Handler) Search(c *gin.Context) {
	q := service.SearchQuery{
		Title:   c.Query("title"),
		Content: c.Query("content"),
		Author:  c.Query("author"),
		Date:    c.Query("date"),
	}
	c.JSON(http.StatusOK, h.svc.Search(q))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, post.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, post.ErrInvalidArgument), errors.Is(err, post.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
	}
}

// queryInt reads an integer query parameter, falling back to def when it is absent or not a number.
// Numbers too large for int are pinned to math.MaxInt or math.MinInt.
func queryInt(c *gin.Context, key string, def int) int {
	v, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(v, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return def
	}
	return n
}

// pathID accepts only unsigned decimal ids.
func pathID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
