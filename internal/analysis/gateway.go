package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"claritydocs-backend/internal/fault"
	"claritydocs-backend/internal/shared/telemetry"
)

// Client abstracts LLM providers. Implementations return the model's raw JSON
// output for a capability prompt, or an error for transport/provider failures.
type Client interface {
	Generate(ctx context.Context, prompt Prompt) (json.RawMessage, error)
}

// DocumentInput is the input for document-level capabilities.
type DocumentInput struct {
	DocumentText  string
	AgreementType string
}

func (in DocumentInput) validate() error {
	if strings.TrimSpace(in.DocumentText) == "" {
		return fault.Validation("document text is required")
	}
	if !ValidAgreementType(in.AgreementType) {
		return fault.Validation("unknown agreement type")
	}
	return nil
}

// TermInput is the input for the term-lookup capability.
type TermInput struct {
	Term    string
	Context string
}

// WhatIfInput is the input for the what-if capability.
type WhatIfInput struct {
	DocumentText string
	Question     string
}

// Gateway is the uniform boundary in front of every analysis capability. It
// builds the capability prompt, performs exactly one provider call, and
// validates the response against the capability's schema before releasing it.
// It never retries; callers decide whether to retry.
type Gateway struct {
	Client Client
}

// NewGateway constructs a Gateway over the given provider client.
func NewGateway(client Client) *Gateway {
	return &Gateway{Client: client}
}

// Summary produces a plain-language summary of the document.
func (g *Gateway) Summary(ctx context.Context, in DocumentInput) (PlainLanguageSummary, error) {
	var out PlainLanguageSummary
	if err := in.validate(); err != nil {
		return out, err
	}
	err := g.call(ctx, buildDocumentPrompt(CapabilitySummary, summarySystem, in), &out)
	return out, err
}

// RiskScore scores the document's overall safety for the user.
func (g *Gateway) RiskScore(ctx context.Context, in DocumentInput) (RiskScore, error) {
	var out RiskScore
	if err := in.validate(); err != nil {
		return out, err
	}
	err := g.call(ctx, buildDocumentPrompt(CapabilityRiskScore, riskScoreSystem, in), &out)
	return out, err
}

// Timeline extracts key dates from the document. The returned sequence is
// sorted ascending by parsed date regardless of model output order.
func (g *Gateway) Timeline(ctx context.Context, in DocumentInput) (Timeline, error) {
	var out Timeline
	if err := in.validate(); err != nil {
		return out, err
	}
	if err := g.call(ctx, buildDocumentPrompt(CapabilityTimeline, timelineSystem, in), &out); err != nil {
		return Timeline{}, err
	}
	out.sortChronological()
	return out, nil
}

// Examples explains confusing clauses through real-world examples.
func (g *Gateway) Examples(ctx context.Context, in DocumentInput) (ExampleSet, error) {
	var out ExampleSet
	if err := in.validate(); err != nil {
		return out, err
	}
	err := g.call(ctx, buildDocumentPrompt(CapabilityExamples, examplesSystem, in), &out)
	return out, err
}

// Negotiation suggests talking points for unfavorable clauses.
func (g *Gateway) Negotiation(ctx context.Context, in DocumentInput) (NegotiationSuggestionSet, error) {
	var out NegotiationSuggestionSet
	if err := in.validate(); err != nil {
		return out, err
	}
	err := g.call(ctx, buildDocumentPrompt(CapabilityNegotiation, negotiationSystem, in), &out)
	return out, err
}

// TermLookup returns a plain-language definition of a term in context.
func (g *Gateway) TermLookup(ctx context.Context, in TermInput) (TermDefinition, error) {
	var out TermDefinition
	if strings.TrimSpace(in.Term) == "" {
		return out, fault.Validation("term is required")
	}
	err := g.call(ctx, buildTermLookupPrompt(in), &out)
	return out, err
}

// WhatIf answers a hypothetical question against the document text.
func (g *Gateway) WhatIf(ctx context.Context, in WhatIfInput) (WhatIfAnswer, error) {
	var out WhatIfAnswer
	if strings.TrimSpace(in.DocumentText) == "" {
		return out, fault.Validation("document text is required")
	}
	if strings.TrimSpace(in.Question) == "" {
		return out, fault.Validation("question is required")
	}
	err := g.call(ctx, buildWhatIfPrompt(in), &out)
	return out, err
}

type validator interface {
	Validate() error
}

func (g *Gateway) call(ctx context.Context, prompt Prompt, out validator) error {
	raw, err := g.Client.Generate(ctx, prompt)
	if err != nil {
		return fault.Upstream("analysis call failed", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		telemetry.Error("analysis.schema_mismatch", map[string]any{
			"capability": string(prompt.Capability),
			"error":      err.Error(),
			"raw_bytes":  len(raw),
		})
		return fault.Schema("model response did not match the expected structure", err)
	}
	if err := out.Validate(); err != nil {
		telemetry.Error("analysis.schema_mismatch", map[string]any{
			"capability": string(prompt.Capability),
			"error":      err.Error(),
		})
		return fault.Schema("model response did not match the expected structure", err)
	}
	return nil
}
