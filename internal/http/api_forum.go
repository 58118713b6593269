package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"threadboard/internal/auth"
	"threadboard/internal/service"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type threadRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	CategoryID int64  `json:"category_id" binding:"required"`
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ThreadID int64  `json:"thread_id" binding:"required"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.forum.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	category, err := h.forum.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("category", "create")
	c.JSON(http.StatusCreated, categoryToResponse(*category))
}

func (h *Handler) listThreads(c *gin.Context) {
	threads, err := h.forum.ListThreads(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ThreadResponse, len(threads))
	for i := range threads {
		resp[i] = threadToResponse(threads[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid thread id")
		return
	}

	item, err := h.forum.GetThread(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedItemToResponse(*item))
}

func (h *Handler) createThread(c *gin.Context) {
	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	author, _ := auth.CurrentUser(c)
	thread, err := h.forum.CreateThread(c.Request.Context(), author.ID, service.ThreadInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("thread", "create")
	c.JSON(http.StatusCreated, threadToResponse(*thread))
}

func (h *Handler) updateThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid thread id")
		return
	}
	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	actor, _ := auth.CurrentUser(c)
	thread, err := h.forum.UpdateThread(c.Request.Context(), actor.ID, id, service.ThreadInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("thread", "update")
	c.JSON(http.StatusOK, threadToResponse(*thread))
}

func (h *Handler) deleteThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid thread id")
		return
	}

	actor, _ := auth.CurrentUser(c)
	if err := h.forum.DeleteThread(c.Request.Context(), actor.ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("thread", "delete")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) createComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	author, _ := auth.CurrentUser(c)
	comment, err := h.forum.CreateComment(c.Request.Context(), author.ID, req.ThreadID, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("comment", "create")
	c.JSON(http.StatusCreated, commentToResponse(*comment))
}

func (h *Handler) updateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid comment id")
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	actor, _ := auth.CurrentUser(c)
	comment, err := h.forum.UpdateComment(c.Request.Context(), actor.ID, id, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("comment", "update")
	c.JSON(http.StatusOK, commentToResponse(*comment))
}

func (h *Handler) deleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid comment id")
		return
	}

	actor, _ := auth.CurrentUser(c)
	if err := h.forum.DeleteComment(c.Request.Context(), actor.ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("comment", "delete")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) feed(c *gin.Context) {
	items, err := h.forum.Feed(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]FeedThreadResponse, len(items))
	for i := range items {
		resp[i] = feedItemToResponse(items[i])
	}
	c.JSON(http.StatusOK, resp)
}
