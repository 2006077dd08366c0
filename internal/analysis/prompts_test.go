package analysis

import (
	"strings"
	"testing"
)

func TestBuildDocumentPromptIsDeterministic(t *testing.T) {
	in := DocumentInput{DocumentText: "the tenant shall", AgreementType: "Rental Agreement"}

	a := buildDocumentPrompt(CapabilitySummary, summarySystem, in)
	b := buildDocumentPrompt(CapabilitySummary, summarySystem, in)
	if a != b {
		t.Fatalf("same input must build the same prompt")
	}
}

func TestBuildDocumentPromptIncludesAgreementGuidance(t *testing.T) {
	in := DocumentInput{DocumentText: "text", AgreementType: "Loan Agreement"}

	p := buildDocumentPrompt(CapabilitySummary, summarySystem, in)
	if !strings.Contains(p.User, "Loan Agreement") {
		t.Fatalf("expected agreement type in user prompt")
	}
	if !strings.Contains(p.User, "prepayment") {
		t.Fatalf("expected loan-specific guidance in user prompt, got: %s", p.User)
	}

	plain := buildDocumentPrompt(CapabilitySummary, summarySystem, DocumentInput{DocumentText: "text"})
	if strings.Contains(plain.User, "Pay close attention") {
		t.Fatalf("untyped document must not carry agreement guidance")
	}
}

func TestAgreementGuidancePerCapability(t *testing.T) {
	if g := agreementGuidance(CapabilityRiskScore, AgreementEmployment); !strings.Contains(g, "non-compete") {
		t.Fatalf("unexpected risk guidance: %s", g)
	}
	if g := agreementGuidance(CapabilityTimeline, AgreementRental); !strings.Contains(g, "Rental Agreement") {
		t.Fatalf("unexpected timeline guidance: %s", g)
	}
	if g := agreementGuidance(CapabilityExamples, AgreementRental); g != "" {
		t.Fatalf("examples capability has no agreement guidance, got: %s", g)
	}
}

func TestEverySystemPromptDemandsJSONOnly(t *testing.T) {
	systems := map[string]string{
		"summary":     summarySystem,
		"risk-score":  riskScoreSystem,
		"timeline":    timelineSystem,
		"examples":    examplesSystem,
		"negotiation": negotiationSystem,
		"term-lookup": termLookupSystem,
		"what-if":     whatIfSystem,
	}
	for name, system := range systems {
		if !strings.Contains(system, systemJSONOnly) {
			t.Fatalf("%s system prompt missing the JSON-only instruction", name)
		}
	}
}
