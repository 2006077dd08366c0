package analysis

import (
	"fmt"
	"strings"
)

// Prompt is the provider-neutral request built for one capability call.
type Prompt struct {
	Capability Capability
	System     string
	User       string
}

const systemJSONOnly = "Respond with a single JSON object only. No markdown, no code fences. Never omit keys. Output must match the schema exactly."

const summarySystem = `You are an expert legal professional skilled at simplifying complex documents. Produce a JSON object with:
- "summary": a list of {"keyPoint","description"} pairs. keyPoint is a short, clear heading for a key clause or topic; description is a plain-language explanation. Do not use markdown.
- "dos": short, direct statements about what the user is permitted to do, framed as "You can...".
- "donts": short, direct statements about what the user is prohibited from doing, framed as "You cannot...".
- "lockInPeriod": the minimum stay required, if mentioned (e.g. "11 months"), else omit.
- "noticePeriod": the advance time required for termination, if mentioned (e.g. "3 months"), else omit.
- "effectiveDate": the start or effective date of the agreement in YYYY-MM-DD format, if mentioned, else omit.
` + systemJSONOnly

const riskScoreSystem = `You are an expert legal analyst. Analyze the document for the primary user and produce a JSON object with:
- "riskScore": an integer from 0 (extremely risky) to 100 (very safe). A typical, standard agreement scores between 60 and 80.
- "riskSummary": one or two sentences explaining the main reasons for the score.
- "scoreBreakdown": {"positive": [fair or protective clauses], "negative": [risky or unfavorable clauses]}.
- "toneAnalysis": a list of {"clause","tone","explanation"} where tone is exactly one of "Friendly", "Neutral", or "Strict".
` + systemJSONOnly

const timelineSystem = `You are an expert legal assistant specializing in contract management. Extract all key dates, deadlines, and recurring events from the document: payment due dates, grace-period ends, scheduled price or rate changes, notice deadlines, cancellation windows, deliverable deadlines, review periods, effective and start dates, expiration and termination dates, automatic renewal dates, opt-out deadlines, and probation period ends.
Produce a JSON object with "timeline": a list of {"date","event"} where date is in YYYY-MM-DD format and event is a brief, clear description (e.g. "Payment Due"). Sort the list chronologically, earliest first.
` + systemJSONOnly

const examplesSystem = `You are an expert at explaining legal language with everyday situations. Find the most confusing or consequential clauses in the document and, for each, give a simple real-world example of what it means in practice.
Produce a JSON object with "examples": a list of {"clause","example"} where clause is the original text and example is the plain real-world illustration.
` + systemJSONOnly

const negotiationSystem = `You are a seasoned negotiation coach. Identify clauses in the document that are unfavorable to the user and suggest how to negotiate them.
Produce a JSON object with "suggestions": a list of {"clause","suggestion"} where clause is the original unfavorable text and suggestion is a polite, constructive talking point or question to raise.
` + systemJSONOnly

const termLookupSystem = `You are an expert in providing plain-language definitions for technical terms. Given the term and the context it appears in, produce a JSON object with "definition": a clear, concise definition that is easy to understand.
` + systemJSONOnly

const whatIfSystem = `You are a helpful assistant who answers user questions based only on the provided document text. If the document does not contain the information needed, say so clearly. Do not make up information or use external knowledge.
Produce a JSON object with "answer": the answer to the user's question.
` + systemJSONOnly

func buildDocumentPrompt(capability Capability, system string, in DocumentInput) Prompt {
	var b strings.Builder
	if in.AgreementType != "" {
		fmt.Fprintf(&b, "The user has specified that this is a %q document. Focus on the most critical clauses for this type of agreement.\n", in.AgreementType)
		if g := agreementGuidance(capability, AgreementType(in.AgreementType)); g != "" {
			b.WriteString(g)
			b.WriteString("\n")
		}
	}
	b.WriteString("Document:\n")
	b.WriteString(in.DocumentText)
	return Prompt{Capability: capability, System: system, User: b.String()}
}

func buildTermLookupPrompt(in TermInput) Prompt {
	user := fmt.Sprintf("Term: %s\nContext: %s", in.Term, in.Context)
	return Prompt{Capability: CapabilityTermLookup, System: termLookupSystem, User: user}
}

func buildWhatIfPrompt(in WhatIfInput) Prompt {
	user := fmt.Sprintf("User's question:\n%q\n\nDocument:\n%s", in.Question, in.DocumentText)
	return Prompt{Capability: CapabilityWhatIf, System: whatIfSystem, User: user}
}

// agreementGuidance returns capability-specific instructions for a known
// agreement type. Pure function of its inputs; unknown combinations return "".
func agreementGuidance(capability Capability, agreement AgreementType) string {
	switch capability {
	case CapabilitySummary:
		return summaryGuidance[agreement]
	case CapabilityRiskScore:
		return riskGuidance[agreement]
	case CapabilityTimeline:
		return fmt.Sprintf("This is a %q, so pay special attention to dates commonly found in this type of document.", agreement)
	}
	return ""
}

var summaryGuidance = map[AgreementType]string{
	AgreementRental: `Pay close attention to and summarize: the effective date (extract to effectiveDate, YYYY-MM-DD), the termination notice period (extract to noticePeriod), any minimum-stay lock-in period (extract to lockInPeriod), security deposit amount and refund conditions, yearly rent escalation, maintenance responsibilities (tenant vs. landlord), restrictions on subletting, pets, or commercial use, and penalties for late rent or early termination.`,
	AgreementLoan: `Pay close attention to and summarize: the effective date (extract to effectiveDate, YYYY-MM-DD), whether the interest rate is fixed or floating and how it compounds, the repayment schedule (installment amount and tenure), prepayment rules and penalties, pledged collateral, what constitutes a default and any grace period, penalty charges, and the lender's rights on default.`,
	AgreementTerms: `Pay close attention to and summarize: the effective date (extract to effectiveDate, YYYY-MM-DD), user obligations and forbidden uses, how personal data is collected, stored, and shared, conditions for account suspension or termination, dispute resolution and jurisdiction, limitation of liability, automatic renewals and how to cancel, and who owns uploaded content.`,
	AgreementEmployment: `Pay close attention to and summarize: the start date (extract to effectiveDate, YYYY-MM-DD), job title and key duties, base salary and bonuses, probation period terms, the resignation/termination notice period (extract to noticePeriod), working hours and leave policy, benefits, termination conditions with and without cause, and non-compete or moonlighting restrictions.`,
}

var riskGuidance = map[AgreementType]string{
	AgreementRental:     `Evaluate against standards for rental agreements. Focus on: security deposit, rent escalation, maintenance, use restrictions, penalties.`,
	AgreementLoan:       `Evaluate against standards for loan agreements. Focus on: interest rate, prepayment rules, collateral, default terms, penalty charges.`,
	AgreementTerms:      `Evaluate against standards for terms of service. Focus on: data usage, termination rights, limitation of liability, dispute resolution.`,
	AgreementEmployment: `Evaluate against standards for employment contracts. Focus on: notice period, termination conditions, non-compete clauses, intellectual property.`,
}
