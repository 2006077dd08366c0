package analysis

// Capability names one distinct document-analysis operation exposed by the gateway.
type Capability string

const (
	CapabilitySummary     Capability = "summary"
	CapabilityRiskScore   Capability = "risk-score"
	CapabilityTimeline    Capability = "timeline"
	CapabilityExamples    Capability = "examples"
	CapabilityNegotiation Capability = "negotiation"
	CapabilityTermLookup  Capability = "term-lookup"
	CapabilityWhatIf      Capability = "what-if"
)

// ParseCapability maps a route segment to a Capability.
func ParseCapability(raw string) (Capability, bool) {
	switch Capability(raw) {
	case CapabilitySummary, CapabilityRiskScore, CapabilityTimeline, CapabilityExamples,
		CapabilityNegotiation, CapabilityTermLookup, CapabilityWhatIf:
		return Capability(raw), true
	}
	return "", false
}

// AgreementType classifies the input document and selects prompt guidance.
type AgreementType string

const (
	AgreementRental     AgreementType = "Rental Agreement"
	AgreementLoan       AgreementType = "Loan Agreement"
	AgreementTerms      AgreementType = "Terms of Service"
	AgreementEmployment AgreementType = "Employment Contract"
)

// ValidAgreementType reports whether raw is a known agreement type. Empty is
// valid: the tag is optional.
func ValidAgreementType(raw string) bool {
	switch AgreementType(raw) {
	case "", AgreementRental, AgreementLoan, AgreementTerms, AgreementEmployment:
		return true
	}
	return false
}
