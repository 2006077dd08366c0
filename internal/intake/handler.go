package intake

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claritydocs-backend/internal/shared/server/middleware"
	"claritydocs-backend/internal/shared/server/respond"
)

type Handler struct {
	Orc *Orchestrator
}

func NewHandler(orc *Orchestrator) *Handler {
	return &Handler{Orc: orc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/intake/extract", h.extract)
	rg.POST("/intake/submit", h.submit)
	rg.GET("/intake/session", h.session)
	rg.POST("/intake/reset", h.reset)
}

func callerIdentity(c *gin.Context) (userID string, isGuest bool) {
	if v, ok := c.Get("isGuest"); ok {
		if guest, ok2 := v.(bool); ok2 {
			isGuest = guest
		}
	}
	return middleware.UserIDFromContext(c), isGuest
}

type extractRequest struct {
	FileDataURI string `json:"fileDataUri"`
}

func (h *Handler) extract(c *gin.Context) {
	userID, _ := callerIdentity(c)
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	ext, err := h.Orc.Extract(c.Request.Context(), userID, req.FileDataURI)
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"documentText": ext.Text,
		"fileType":     ext.FileType,
		"fileSize":     ext.FileSize,
	})
}

type submitRequest struct {
	DocumentText      string `json:"documentText"`
	AgreementType     string `json:"agreementType"`
	DocumentName      string `json:"documentName"`
	EditingDocumentID string `json:"editingDocumentId"`
}

func (h *Handler) submit(c *gin.Context) {
	userID, isGuest := callerIdentity(c)
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	result, err := h.Orc.Submit(c.Request.Context(), userID, isGuest, SubmitInput{
		DocumentText:      req.DocumentText,
		AgreementType:     req.AgreementType,
		DocumentName:      req.DocumentName,
		EditingDocumentID: req.EditingDocumentID,
	})
	if err != nil {
		respond.Fault(c, err)
		return
	}
	if result.Discarded {
		respond.Error(c, http.StatusConflict, "session_reset", "the session was reset while the analysis was running", nil)
		return
	}
	body := gin.H{"summaryData": result.Summary}
	if result.DocumentID != "" {
		body["documentId"] = result.DocumentID
	}
	if result.PersistenceWarning != "" {
		body["persistenceWarning"] = result.PersistenceWarning
	}
	respond.JSON(c, http.StatusOK, body)
}

func (h *Handler) session(c *gin.Context) {
	userID, _ := callerIdentity(c)
	st, err := h.Orc.Session(c.Request.Context(), userID)
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, st)
}

func (h *Handler) reset(c *gin.Context) {
	userID, _ := callerIdentity(c)
	if err := h.Orc.Reset(c.Request.Context(), userID); err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"reset": true})
}
