package intake

import (
	"context"
	"strings"

	"claritydocs-backend/internal/analysis"
	"claritydocs-backend/internal/extract"
	"claritydocs-backend/internal/fault"
	"claritydocs-backend/internal/history"
	"claritydocs-backend/internal/session"
	"claritydocs-backend/internal/shared/telemetry"
)

// Orchestrator drives a document from upload through analysis into history.
// The session store is the hand-off channel between stages: extraction and
// submission write to it, the results page reads it back, reset clears it.
type Orchestrator struct {
	Sessions  session.Store
	Gateway   *analysis.Gateway
	History   *history.Service
	Extractor *extract.Service
}

func NewOrchestrator(sessions session.Store, gateway *analysis.Gateway, hist *history.Service, extractor *extract.Service) *Orchestrator {
	return &Orchestrator{
		Sessions:  sessions,
		Gateway:   gateway,
		History:   hist,
		Extractor: extractor,
	}
}

// Extract runs remote text extraction and stages the result in the session.
// On failure the session is left untouched.
func (o *Orchestrator) Extract(ctx context.Context, userID, fileDataURI string) (extract.Extraction, error) {
	ext, err := o.Extractor.Extract(ctx, userID, fileDataURI)
	if err != nil {
		return extract.Extraction{}, err
	}

	st, err := o.Sessions.Load(ctx, userID)
	if err != nil {
		return extract.Extraction{}, fault.Persistence("could not load session", err)
	}
	st.DocumentText = ext.Text
	st.FileType = ext.FileType
	st.FileSize = ext.FileSize
	st.Summary = nil
	if err := o.Sessions.Save(ctx, userID, st); err != nil {
		return extract.Extraction{}, fault.Persistence("could not save session", err)
	}
	return ext, nil
}

// SubmitInput carries one submission from the intake form.
type SubmitInput struct {
	DocumentText      string
	AgreementType     string
	DocumentName      string
	EditingDocumentID string
}

// SubmitResult is the outcome of a submission. PersistenceWarning is set when
// the analysis succeeded but saving to history did not; Discarded is set when
// the session was reset while the analysis was in flight.
type SubmitResult struct {
	Summary            analysis.PlainLanguageSummary
	DocumentID         string
	PersistenceWarning string
	Discarded          bool
}

// Submit stages the submission, runs the summary capability, caches the
// result for replay, and best-effort persists it to history.
func (o *Orchestrator) Submit(ctx context.Context, userID string, isGuest bool, in SubmitInput) (SubmitResult, error) {
	if strings.TrimSpace(in.DocumentText) == "" {
		return SubmitResult{}, fault.Validation("document text is required")
	}
	if !analysis.ValidAgreementType(in.AgreementType) {
		return SubmitResult{}, fault.Validation("unknown agreement type")
	}

	prev, err := o.Sessions.Load(ctx, userID)
	if err != nil {
		return SubmitResult{}, fault.Persistence("could not load session", err)
	}
	gen := prev.Generation

	// Stage the pending submission and drop any cached summary so a replay
	// during the call cannot serve a stale result.
	staged := session.State{
		DocumentText:      in.DocumentText,
		AgreementType:     in.AgreementType,
		DocumentName:      in.DocumentName,
		EditingDocumentID: in.EditingDocumentID,
		FileType:          prev.FileType,
		FileSize:          prev.FileSize,
		Generation:        gen,
	}
	if err := o.Sessions.Save(ctx, userID, staged); err != nil {
		return SubmitResult{}, fault.Persistence("could not save session", err)
	}

	summary, err := o.Gateway.Summary(ctx, analysis.DocumentInput{
		DocumentText:  in.DocumentText,
		AgreementType: in.AgreementType,
	})
	if err != nil {
		o.clearPending(ctx, userID, gen)
		return SubmitResult{}, err
	}

	cur, loadErr := o.Sessions.Load(ctx, userID)
	if loadErr != nil || cur.Generation != gen {
		// Reset happened while the provider call was in flight. The result
		// is neither cached nor persisted.
		return SubmitResult{Discarded: true}, nil
	}

	result := SubmitResult{Summary: summary, DocumentID: in.EditingDocumentID}
	if !isGuest && o.History != nil {
		result.DocumentID, result.PersistenceWarning = o.persist(ctx, userID, in, cur, &summary)
	}

	cur.Summary = &summary
	cur.EditingDocumentID = result.DocumentID
	if err := o.Sessions.Save(ctx, userID, cur); err != nil {
		telemetry.Error("intake.cache_summary_failed", map[string]any{"error": err.Error(), "user_id": userID})
	}
	return result, nil
}

// persist saves the analyzed document to history, creating a record or
// updating the one being edited. Failures never fail the submission.
func (o *Orchestrator) persist(ctx context.Context, userID string, in SubmitInput, st session.State, summary *analysis.PlainLanguageSummary) (documentID, warning string) {
	name := in.DocumentName
	if strings.TrimSpace(name) == "" {
		name = "Pasted Document"
	}

	if in.EditingDocumentID != "" {
		_, err := o.History.Update(ctx, userID, in.EditingDocumentID, history.Patch{
			DocumentName: &name,
			DocumentType: &in.AgreementType,
			Content:      &in.DocumentText,
			Summary:      summary,
		})
		if err == nil {
			return in.EditingDocumentID, ""
		}
		telemetry.Error("intake.history_update_failed", map[string]any{
			"error":       err.Error(),
			"user_id":     userID,
			"document_id": in.EditingDocumentID,
		})
		return in.EditingDocumentID, "analysis succeeded but the document could not be updated in history"
	}

	rec, err := o.History.Create(ctx, userID, history.NewRecord{
		DocumentName: name,
		DocumentType: in.AgreementType,
		Content:      in.DocumentText,
		Summary:      summary,
		FileType:     st.FileType,
		FileSize:     st.FileSize,
	})
	if err != nil {
		telemetry.Error("intake.history_create_failed", map[string]any{
			"error":   err.Error(),
			"user_id": userID,
		})
		return "", "analysis succeeded but the document could not be saved to history"
	}
	return rec.ID, ""
}

// clearPending drops the staged submission after a failed analysis, unless a
// reset already advanced the generation.
func (o *Orchestrator) clearPending(ctx context.Context, userID string, gen int64) {
	cur, err := o.Sessions.Load(ctx, userID)
	if err != nil || cur.Generation != gen {
		return
	}
	if err := o.Sessions.Save(ctx, userID, session.State{Generation: gen}); err != nil {
		telemetry.Error("intake.clear_pending_failed", map[string]any{"error": err.Error(), "user_id": userID})
	}
}

// Session returns the stored hand-off state. A cached summary in the returned
// state is served as-is; callers never re-invoke the provider for it.
func (o *Orchestrator) Session(ctx context.Context, userID string) (session.State, error) {
	st, err := o.Sessions.Load(ctx, userID)
	if err != nil {
		return session.State{}, fault.Persistence("could not load session", err)
	}
	return st, nil
}

// Reset clears every hand-off key and bumps the generation so in-flight work
// is discarded.
func (o *Orchestrator) Reset(ctx context.Context, userID string) error {
	if _, err := o.Sessions.Clear(ctx, userID); err != nil {
		return fault.Persistence("could not reset session", err)
	}
	return nil
}
