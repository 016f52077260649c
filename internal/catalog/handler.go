package catalog

import (
	"github.com/gin-gonic/gin"

	"watchfinder-backend/internal/shared/server/respond"
)

// Handler exposes the facet registry to the presentation layer.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches registry routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/facets", h.listFacets)
}

func (h *Handler) listFacets(c *gin.Context) {
	respond.OK(c, gin.H{
		"facets": Facets(),
		"ranges": Ranges(),
	})
}
