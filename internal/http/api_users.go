package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"threadboard/internal/auth"
	"threadboard/internal/domain"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.metrics.AuthEvent("signup", "failure")
		h.respondError(c, err)
		return
	}
	h.metrics.AuthEvent("signup", "success")
	h.logger.WithField("user_id", user.ID).Info("user signed up")

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.AuthEvent("login", "failure")
		h.respondError(c, err)
		return
	}
	if err := h.startSession(c, user); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.AuthEvent("login", "success")

	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.endSession(c)
	h.metrics.AuthEvent("logout", "success")
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid user id")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid user id")
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Username == nil && req.Email == nil && req.Password == nil {
		badRequest(c, "nothing to update")
		return
	}

	actor, _ := auth.CurrentUser(c)
	user, err := h.users.Update(c.Request.Context(), actor.ID, id, domain.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("user", "update")
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		badRequest(c, "invalid user id")
		return
	}

	actor, _ := auth.CurrentUser(c)
	if err := h.users.Delete(c.Request.Context(), actor.ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("user", "delete")
	h.endSession(c)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) startSession(c *gin.Context, user *domain.User) error {
	token, _, err := h.sessions.Issue(user.ID)
	if err != nil {
		return err
	}
	auth.SetCookie(c, h.sessions, token, h.secure)
	return nil
}

// endSession revokes the current session when possible and always clears the cookie.
func (h *Handler) endSession(c *gin.Context) {
	if claims, ok := auth.CurrentClaims(c); ok {
		if err := h.sessions.Revoke(c.Request.Context(), claims); err != nil {
			h.logger.WithError(err).Warn("revoke session")
		}
	}
	auth.ClearCookie(c, h.secure)
}
