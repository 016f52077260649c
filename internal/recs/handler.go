package recs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchfinder-backend/internal/filters"
	"watchfinder-backend/internal/llm"
	"watchfinder-backend/internal/shared/server/middleware"
	"watchfinder-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.createSession)
	rg.GET("/sessions/:id", h.getSession)
	rg.POST("/sessions/:id/facets/:facetId/toggle", h.toggleValue)
	rg.POST("/sessions/:id/facets/:facetId/custom", h.addCustom)
	rg.POST("/sessions/:id/facets/:facetId/remove", h.removeValue)
	rg.PUT("/sessions/:id/ranges/:rangeId", h.setRange)
	rg.POST("/sessions/:id/filters/reset", h.resetFilters)
	rg.POST("/sessions/:id/reset", h.resetSession)
	rg.POST("/sessions/:id/search", h.startSearch)
	rg.GET("/sessions/:id/result", h.getResult)
	rg.POST("/quiz", h.matchQuiz)
}

type valueRequest struct {
	Value string `json:"value"`
}

type rangeRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func (h *Handler) createSession(c *gin.Context) {
	sess, err := h.Svc.CreateSession(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create session", nil)
		return
	}
	respond.Created(c, sessionResponse(sess))
}

func (h *Handler) getSession(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) toggleValue(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	sess, err := h.Svc.Toggle(c.Request.Context(), c.Param("id"), c.Param("facetId"), req.Value)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) addCustom(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	sess, err := h.Svc.AddCustom(c.Request.Context(), c.Param("id"), c.Param("facetId"), req.Value)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) removeValue(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "value is required", nil)
		return
	}
	sess, err := h.Svc.RemoveValue(c.Request.Context(), c.Param("id"), c.Param("facetId"), req.Value)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) setRange(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Min == nil || req.Max == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "min and max are required", nil)
		return
	}
	sess, err := h.Svc.SetRange(c.Request.Context(), c.Param("id"), c.Param("rangeId"), *req.Min, *req.Max)
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) resetFilters(c *gin.Context) {
	sess, err := h.Svc.ResetFilters(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) resetSession(c *gin.Context) {
	sess, err := h.Svc.ResetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	respond.OK(c, sessionResponse(sess))
}

func (h *Handler) startSearch(c *gin.Context) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	sess, err := h.Svc.StartSearch(ctx, c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.Set("sessionId", sess.ID)
	c.Set("statusTransition", "accepted->pending")
	respond.JSON(c, http.StatusAccepted, gin.H{
		"sessionId": sess.ID,
		"status":    sess.Status,
	})
}

func (h *Handler) getResult(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	resp := gin.H{
		"sessionId": sess.ID,
		"status":    sess.Status,
	}
	switch sess.Status {
	case StatusReady:
		// A zero-length list is a legitimate no-matches result.
		watches := sess.Watches
		if watches == nil {
			watches = []Suggestion{}
		}
		resp["watches"] = watches
	case StatusFailed:
		resp["error"] = gin.H{
			"code":    sess.ErrorCode,
			"message": sess.ErrorMessage,
		}
	}
	respond.OK(c, resp)
}

func (h *Handler) matchQuiz(c *gin.Context) {
	var req llm.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.MatchQuiz(ctx, req)
	if err != nil {
		h.respondQuizError(c, err)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) respondQuizError(c *gin.Context, err error) {
	var qe *QuizError
	if !errors.As(err, &qe) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		return
	}
	switch qe.Code {
	case ErrorCodeTimeout:
		respond.Error(c, http.StatusGatewayTimeout, "llm_timeout", userMessageFor(qe.Code), nil)
	case ErrorCodeSchemaMismatch:
		respond.Error(c, http.StatusBadGateway, "llm_schema_mismatch", userMessageFor(qe.Code), nil)
	case ErrorCodeProvider:
		respond.Error(c, http.StatusBadGateway, "provider_error", userMessageFor(qe.Code), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", userMessageFor(qe.Code), nil)
	}
}

func (h *Handler) respondSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
	case errors.Is(err, ErrSearchInFlight):
		respond.Error(c, http.StatusConflict, "search_in_flight", "a search is already in progress for this session", nil)
	case errors.Is(err, filters.ErrInvalidFacet):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown or unsupported facet", nil)
	case errors.Is(err, filters.ErrInvalidRange):
		respond.Error(c, http.StatusBadRequest, "validation_error", "range is inverted or out of bounds", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
	}
}

func sessionResponse(sess Session) gin.H {
	return gin.H{
		"sessionId": sess.ID,
		"status":    sess.Status,
		"selection": sess.Selection,
		"createdAt": sess.CreatedAt,
		"updatedAt": sess.UpdatedAt,
	}
}
