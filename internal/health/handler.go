package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// Store is the read-only slice of the tabular store the status
// endpoint reports on.
type Store interface {
	Ping(ctx context.Context) error
	Teams(ctx context.Context) ([]domain.Team, error)
	Projects(ctx context.Context) ([]domain.Project, error)
}

type Handler struct {
	store Store
}

// NewRouter builds the operational HTTP surface served beside the
// poller: liveness plus a read-only status snapshot.
func NewRouter(store Store) *gin.Engine {
	h := &Handler{store: store}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", h.healthz)
	r.GET("/api/v1/status", h.status)
	return r
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) status(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
		return
	}

	teams, err := h.store.Teams(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	projects, err := h.store.Projects(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	reserved := 0
	for _, t := range teams {
		if t.ProjectNumber != "" {
			reserved++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"teams":          len(teams),
		"reserved_teams": reserved,
		"projects":       len(projects),
	})
}
