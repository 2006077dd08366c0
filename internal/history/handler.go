package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claritydocs-backend/internal/shared/server/middleware"
	"claritydocs-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.POST("/history", h.create)
	rg.GET("/history/:id", h.get)
	rg.PATCH("/history/:id", h.update)
	rg.DELETE("/history/:id", h.delete)
}

// requireUser rejects guest callers. History is only available after sign-in.
func requireUser(c *gin.Context) (string, bool) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "login required to use history", nil)
			return "", false
		}
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "login_required", "login required to use history", nil)
		return "", false
	}
	return userID, true
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit := DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "limit must be a positive integer", nil)
			return
		}
		limit = n
	}
	recs, err := h.Svc.List(c.Request.Context(), userID, userID, limit)
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"history": toDTOs(recs)})
}

func (h *Handler) create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), userID, NewRecord{
		DocumentName: req.DocumentName,
		DocumentType: req.DocumentType,
		Content:      req.Content,
		Summary:      req.Summary,
		FileType:     req.FileType,
		FileSize:     req.FileSize,
	})
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toDTO(rec))
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	}
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toDTO(rec))
}

func (h *Handler) update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), Patch{
		DocumentName: req.DocumentName,
		DocumentType: req.DocumentType,
		Content:      req.Content,
		Summary:      req.Summary,
	})
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	}
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toDTO(rec))
}

func (h *Handler) delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		return
	}
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
