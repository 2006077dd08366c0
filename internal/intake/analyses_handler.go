package intake

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"claritydocs-backend/internal/analysis"
	"claritydocs-backend/internal/shared/server/respond"
)

// RegisterAnalysisRoutes exposes the on-demand capabilities invoked from the
// results view. Each call is stateless toward the provider; the document text
// comes inline or from the staged session.
func (h *Handler) RegisterAnalysisRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/:capability", h.analyze)
}

type analyzeRequest struct {
	DocumentText  string `json:"documentText"`
	AgreementType string `json:"agreementType"`
	Term          string `json:"term"`
	Question      string `json:"question"`
}

func (h *Handler) analyze(c *gin.Context) {
	capability, ok := analysis.ParseCapability(c.Param("capability"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown analysis capability", nil)
		return
	}

	userID, _ := callerIdentity(c)
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	ctx := c.Request.Context()
	if strings.TrimSpace(req.DocumentText) == "" {
		st, err := h.Orc.Session(ctx, userID)
		if err != nil {
			respond.Fault(c, err)
			return
		}
		req.DocumentText = st.DocumentText
		if req.AgreementType == "" {
			req.AgreementType = st.AgreementType
		}
	}

	doc := analysis.DocumentInput{DocumentText: req.DocumentText, AgreementType: req.AgreementType}
	gw := h.Orc.Gateway

	var result any
	var err error
	switch capability {
	case analysis.CapabilitySummary:
		result, err = gw.Summary(ctx, doc)
	case analysis.CapabilityRiskScore:
		result, err = gw.RiskScore(ctx, doc)
	case analysis.CapabilityTimeline:
		result, err = gw.Timeline(ctx, doc)
	case analysis.CapabilityExamples:
		result, err = gw.Examples(ctx, doc)
	case analysis.CapabilityNegotiation:
		result, err = gw.Negotiation(ctx, doc)
	case analysis.CapabilityTermLookup:
		result, err = gw.TermLookup(ctx, analysis.TermInput{Term: req.Term, Context: req.DocumentText})
	case analysis.CapabilityWhatIf:
		result, err = gw.WhatIf(ctx, analysis.WhatIfInput{DocumentText: req.DocumentText, Question: req.Question})
	}
	if err != nil {
		respond.Fault(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
