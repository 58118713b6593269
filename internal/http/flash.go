package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "forum_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func (h *Handler) setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+":"+message, 60, "/", "", h.secure, true)
}

func (h *Handler) popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", h.secure, true)

	kind, message, ok := strings.Cut(raw, ":")
	if !ok {
		return &Flash{Kind: "info", Message: raw}
	}
	return &Flash{Kind: kind, Message: message}
}

// redirectWith stores a flash message and sends the browser to path.
func (h *Handler) redirectWith(c *gin.Context, path, kind, message string) {
	h.setFlash(c, kind, message)
	c.Redirect(http.StatusSeeOther, path)
}
