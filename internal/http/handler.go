package http

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"threadboard/internal/auth"
	"threadboard/internal/metrics"
	"threadboard/internal/service"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options wires the handler to its collaborators.
type Options struct {
	Users         service.UserService
	Forum         service.ForumService
	Directory     service.DirectoryService
	Sessions      *auth.Sessions
	Metrics       *metrics.Metrics
	Logger        *logrus.Logger
	SecureCookies bool
	// RateLimitRPS throttles login and signup per client; <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	forum     service.ForumService
	directory service.DirectoryService
	sessions  *auth.Sessions
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	limiter   *rateLimiter
	secure    bool
}

func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	return &Handler{
		users:     opts.Users,
		forum:     opts.Forum,
		directory: opts.Directory,
		sessions:  opts.Sessions,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		limiter:   newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		secure:    opts.SecureCookies,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")))

	router.Use(requestLogger(h.logger))
	router.Use(metricsMiddleware(h.metrics))
	router.Use(corsMiddleware())
	router.Use(auth.LoadUser(h.sessions, h.users, h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	h.registerAPI(router)
	h.registerWeb(router)
}

func (h *Handler) registerAPI(router *gin.Engine) {
	api := router.Group("/api")
	limited := api.Group("", h.limiter.middleware())
	authed := api.Group("", auth.RequireUser(auth.DenyJSON))
	{
		limited.POST("/signup", h.signup)
		limited.POST("/login", h.login)
		authed.POST("/logout", h.logout)
		authed.GET("/me", h.me)

		api.GET("/users", h.listUsers)
		api.GET("/users/:id", h.getUser)
		authed.PUT("/users/:id", h.updateUser)
		authed.DELETE("/users/:id", h.deleteUser)

		api.GET("/categories", h.listCategories)
		api.POST("/categories", h.createCategory)

		api.GET("/threads", h.listThreads)
		api.GET("/threads/:id", h.getThread)
		authed.POST("/threads", h.createThread)
		authed.PUT("/threads/:id", h.updateThread)
		authed.DELETE("/threads/:id", h.deleteThread)

		authed.POST("/comments", h.createComment)
		authed.PUT("/comments/:id", h.updateComment)
		authed.DELETE("/comments/:id", h.deleteComment)

		api.GET("/feed", h.feed)

		api.GET("/cities", h.listCities)
		api.POST("/cities", h.createCity)
		api.GET("/customers", h.listCustomers)
		api.POST("/customers", h.createCustomer)
	}
}

func (h *Handler) registerWeb(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/feed")
	})
	router.GET("/feed", h.webFeed)
	router.GET("/login", h.webLoginForm)
	router.POST("/login", h.limiter.middleware(), h.webLogin)
	router.GET("/signup", h.webSignupForm)
	router.POST("/signup", h.limiter.middleware(), h.webSignup)
	router.GET("/logout", h.webLogoutPage)
	router.POST("/logout", h.webLogout)

	web := router.Group("", auth.RequireUser(h.denyHTML))
	{
		web.GET("/profile", h.webProfile)
		web.POST("/create_thread_web", h.webCreateThread)
		web.GET("/edit_thread/:id", h.webEditThreadForm)
		web.POST("/edit_thread/:id", h.webEditThread)
		web.POST("/delete_thread/:id", h.webDeleteThread)
		web.POST("/create_comment_web", h.webCreateComment)
		web.GET("/edit_comment/:id", h.webEditCommentForm)
		web.POST("/edit_comment/:id", h.webEditComment)
		web.POST("/delete_comment/:id", h.webDeleteComment)
	}
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var templateFuncs = template.FuncMap{
	"when": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
}
