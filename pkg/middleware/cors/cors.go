package cors

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Config controls the headers the middleware emits. Zero-value fields fall
// back to defaults that cover the API's own routes.
type Config struct {
	// AllowedOrigins lists origins that may call the API. Empty means any
	// origin is reflected back.
	AllowedOrigins []string
	AllowedHeaders []string
	AllowedMethods []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

var (
	defaultHeaders = []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"}
	defaultMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
)

// New returns a CORS middleware built from cfg.
func New(cfg Config) gin.HandlerFunc {
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = defaultHeaders
	}
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = defaultMethods
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 600
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	headerList := strings.Join(cfg.AllowedHeaders, ", ")
	methodList := strings.Join(cfg.AllowedMethods, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(c *gin.Context) {
		h := c.Writer.Header()

		origin := c.GetHeader("Origin")
		switch {
		case origin != "":
			if _, ok := originSet[strings.TrimRight(origin, "/")]; ok || allowAll {
				h.Set("Access-Control-Allow-Origin", origin)
			}
		case allowAll:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", headerList)
		h.Set("Access-Control-Allow-Methods", methodList)
		h.Set("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
