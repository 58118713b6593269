package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"threadboard/internal/auth"
	"threadboard/internal/service"
)

func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = strings.ReplaceAll(strings.TrimSuffix(name, ".tmpl"), "_", " ")
	}
	data["Flash"] = h.popFlash(c)
	if user, ok := auth.CurrentUser(c); ok {
		data["User"] = user
	}
	c.HTML(http.StatusOK, name, data)
}

// webFail turns an error into a flash message and a redirect.
func (h *Handler) webFail(c *gin.Context, back string, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		back = "/login"
	}
	h.redirectWith(c, back, "error", err.Error())
}

func (h *Handler) denyHTML(c *gin.Context) {
	h.redirectWith(c, "/login", "error", "Please log in to continue.")
}

func formID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(c.PostForm(name)), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func (h *Handler) webLoginForm(c *gin.Context) {
	h.render(c, "login.tmpl", nil)
}

func (h *Handler) webLogin(c *gin.Context) {
	user, err := h.users.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.metrics.AuthEvent("login", "failure")
		h.webFail(c, "/login", err)
		return
	}
	if err := h.startSession(c, user); err != nil {
		h.webFail(c, "/login", err)
		return
	}
	h.metrics.AuthEvent("login", "success")
	h.redirectWith(c, "/feed", "success", "Welcome back, "+user.Username+".")
}

func (h *Handler) webSignupForm(c *gin.Context) {
	h.render(c, "signup.tmpl", nil)
}

func (h *Handler) webSignup(c *gin.Context) {
	user, err := h.users.Signup(c.Request.Context(), c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		h.metrics.AuthEvent("signup", "failure")
		h.webFail(c, "/signup", err)
		return
	}
	h.metrics.AuthEvent("signup", "success")
	h.logger.WithField("user_id", user.ID).Info("user signed up")
	h.redirectWith(c, "/login", "success", "Account created. Please log in.")
}

// webLogoutPage only confirms; the session ends on POST /logout.
func (h *Handler) webLogoutPage(c *gin.Context) {
	h.render(c, "logout.tmpl", gin.H{"Title": "log out"})
}

func (h *Handler) webLogout(c *gin.Context) {
	h.endSession(c)
	h.metrics.AuthEvent("logout", "success")
	h.redirectWith(c, "/login", "info", "You have been logged out.")
}

func (h *Handler) webFeed(c *gin.Context) {
	items, err := h.forum.Feed(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	categories, err := h.forum.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.render(c, "feed.tmpl", gin.H{
		"Items":      items,
		"Categories": categories,
	})
}

func (h *Handler) webProfile(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	threads, err := h.forum.ListThreadsByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.render(c, "profile.tmpl", gin.H{"Threads": threads})
}

func (h *Handler) webCreateThread(c *gin.Context) {
	author, _ := auth.CurrentUser(c)
	_, err := h.forum.CreateThread(c.Request.Context(), author.ID, service.ThreadInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		CategoryID: formID(c, "category_id"),
	})
	if err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	h.metrics.Write("thread", "create")
	h.redirectWith(c, "/feed", "success", "Thread published.")
}

func (h *Handler) webEditThreadForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid thread id")
		return
	}
	item, err := h.forum.GetThread(c.Request.Context(), id)
	if err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	user, _ := auth.CurrentUser(c)
	if item.UserID != user.ID {
		h.webFail(c, "/feed", service.ErrForbidden)
		return
	}
	categories, err := h.forum.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.render(c, "edit_thread.tmpl", gin.H{
		"Thread":     item.Thread,
		"Categories": categories,
	})
}

func (h *Handler) webEditThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid thread id")
		return
	}
	actor, _ := auth.CurrentUser(c)
	_, err := h.forum.UpdateThread(c.Request.Context(), actor.ID, id, service.ThreadInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		CategoryID: formID(c, "category_id"),
	})
	if err != nil {
		h.webFail(c, "/edit_thread/"+c.Param("id"), err)
		return
	}
	h.metrics.Write("thread", "update")
	h.redirectWith(c, "/feed", "success", "Thread updated.")
}

func (h *Handler) webDeleteThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid thread id")
		return
	}
	actor, _ := auth.CurrentUser(c)
	if err := h.forum.DeleteThread(c.Request.Context(), actor.ID, id); err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	h.metrics.Write("thread", "delete")
	h.redirectWith(c, "/feed", "success", "Thread deleted.")
}

func (h *Handler) webCreateComment(c *gin.Context) {
	author, _ := auth.CurrentUser(c)
	_, err := h.forum.CreateComment(c.Request.Context(), author.ID, formID(c, "thread_id"), c.PostForm("content"))
	if err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	h.metrics.Write("comment", "create")
	h.redirectWith(c, "/feed", "success", "Comment posted.")
}

func (h *Handler) webEditCommentForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid comment id")
		return
	}
	comment, err := h.forum.GetComment(c.Request.Context(), id)
	if err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	user, _ := auth.CurrentUser(c)
	if comment.UserID != user.ID {
		h.webFail(c, "/feed", service.ErrForbidden)
		return
	}
	h.render(c, "edit_comment.tmpl", gin.H{"Comment": comment})
}

func (h *Handler) webEditComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid comment id")
		return
	}
	actor, _ := auth.CurrentUser(c)
	if _, err := h.forum.UpdateComment(c.Request.Context(), actor.ID, id, c.PostForm("content")); err != nil {
		h.webFail(c, "/edit_comment/"+c.Param("id"), err)
		return
	}
	h.metrics.Write("comment", "update")
	h.redirectWith(c, "/feed", "success", "Comment updated.")
}

func (h *Handler) webDeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.redirectWith(c, "/feed", "error", "invalid comment id")
		return
	}
	actor, _ := auth.CurrentUser(c)
	if err := h.forum.DeleteComment(c.Request.Context(), actor.ID, id); err != nil {
		h.webFail(c, "/feed", err)
		return
	}
	h.metrics.Write("comment", "delete")
	h.redirectWith(c, "/feed", "success", "Comment deleted.")
}
