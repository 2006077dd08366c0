package intake

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"claritydocs-backend/internal/analysis"
	"claritydocs-backend/internal/extract"
	"claritydocs-backend/internal/fault"
	"claritydocs-backend/internal/history"
	"claritydocs-backend/internal/session"
)

const summaryJSON = `{"summary":[{"keyPoint":"Rent","description":"Due on the 1st."}],"dos":["Pay on time"],"donts":["Do not sublet"]}`

// stubClient returns canned JSON and counts calls. beforeReturn, when set,
// runs inside the provider call to simulate concurrent activity.
type stubClient struct {
	calls        int
	response     string
	err          error
	beforeReturn func()
}

func (s *stubClient) Generate(ctx context.Context, prompt analysis.Prompt) (json.RawMessage, error) {
	s.calls++
	if s.beforeReturn != nil {
		s.beforeReturn()
	}
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.response), nil
}

type stubRemote struct {
	text string
	err  error
}

func (s *stubRemote) Process(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func newTestOrchestrator(client *stubClient, remote extract.Remote) (*Orchestrator, session.Store, *history.Service) {
	sessions := session.NewMemoryStore()
	hist := history.NewService(history.NewMemoryRepo())
	orc := NewOrchestrator(sessions, analysis.NewGateway(client), hist, &extract.Service{Remote: remote})
	return orc, sessions, hist
}

func TestSubmitCachesSummaryAndPersists(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, sessions, hist := newTestOrchestrator(client, nil)
	ctx := context.Background()

	result, err := orc.Submit(ctx, "user-1", false, SubmitInput{
		DocumentText:  "the tenant shall...",
		AgreementType: "Rental Agreement",
		DocumentName:  "lease.pdf",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Discarded {
		t.Fatalf("unexpected discard")
	}
	if result.PersistenceWarning != "" {
		t.Fatalf("unexpected warning: %s", result.PersistenceWarning)
	}
	if result.DocumentID == "" {
		t.Fatalf("expected a persisted document id")
	}
	if len(result.Summary.Summary) != 1 || result.Summary.Summary[0].KeyPoint != "Rent" {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}

	st, err := sessions.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Summary == nil {
		t.Fatalf("expected cached summary in session")
	}
	if st.EditingDocumentID != result.DocumentID {
		t.Fatalf("expected session to track the persisted record")
	}

	recs, err := hist.List(ctx, "user-1", "user-1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(recs))
	}
	if recs[0].DocumentName != "lease.pdf" {
		t.Fatalf("unexpected document name %q", recs[0].DocumentName)
	}
}

func TestSubmitWithEditingIDUpdatesInsteadOfCreating(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, _, hist := newTestOrchestrator(client, nil)
	ctx := context.Background()

	first, err := orc.Submit(ctx, "user-1", false, SubmitInput{
		DocumentText:  "version one",
		AgreementType: "Rental Agreement",
		DocumentName:  "lease.pdf",
	})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	second, err := orc.Submit(ctx, "user-1", false, SubmitInput{
		DocumentText:      "version two",
		AgreementType:     "Rental Agreement",
		DocumentName:      "lease.pdf",
		EditingDocumentID: first.DocumentID,
	})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if second.DocumentID != first.DocumentID {
		t.Fatalf("expected same record id, got %s vs %s", second.DocumentID, first.DocumentID)
	}

	recs, err := hist.List(ctx, "user-1", "user-1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected one record after edit, got %d", len(recs))
	}
	if recs[0].Content != "version two" {
		t.Fatalf("expected updated content, got %q", recs[0].Content)
	}
}

func TestSubmitGuestIsNotPersisted(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, sessions, hist := newTestOrchestrator(client, nil)
	ctx := context.Background()

	result, err := orc.Submit(ctx, "guest:abc", true, SubmitInput{DocumentText: "text"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.DocumentID != "" {
		t.Fatalf("guest submission must not persist, got id %s", result.DocumentID)
	}

	st, _ := sessions.Load(ctx, "guest:abc")
	if st.Summary == nil {
		t.Fatalf("expected cached summary for guest session")
	}
	if recs, _ := hist.List(ctx, "guest:abc", "guest:abc", 0); len(recs) != 0 {
		t.Fatalf("expected no history records for guest, got %d", len(recs))
	}
}

func TestSubmitFailureClearsPendingText(t *testing.T) {
	client := &stubClient{err: errors.New("provider down")}
	orc, sessions, _ := newTestOrchestrator(client, nil)
	ctx := context.Background()

	_, err := orc.Submit(ctx, "user-1", false, SubmitInput{DocumentText: "text"})
	if !fault.Is(err, fault.KindUpstream) {
		t.Fatalf("expected upstream fault, got %v", err)
	}

	st, loadErr := sessions.Load(ctx, "user-1")
	if loadErr != nil {
		t.Fatalf("Load: %v", loadErr)
	}
	if st.DocumentText != "" {
		t.Fatalf("expected pending text cleared, got %q", st.DocumentText)
	}
	if st.Summary != nil {
		t.Fatalf("expected no cached summary after failure")
	}
}

func TestSessionReplayDoesNotCallProvider(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, _, _ := newTestOrchestrator(client, nil)
	ctx := context.Background()

	if _, err := orc.Submit(ctx, "user-1", false, SubmitInput{DocumentText: "text"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	callsAfterSubmit := client.calls

	st, err := orc.Session(ctx, "user-1")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if st.Summary == nil {
		t.Fatalf("expected replayable summary in session")
	}
	if client.calls != callsAfterSubmit {
		t.Fatalf("replay must not call the provider: %d calls before, %d after", callsAfterSubmit, client.calls)
	}
}

func TestResetDuringSubmitDiscardsResult(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, sessions, hist := newTestOrchestrator(client, nil)
	ctx := context.Background()

	// Reset fires while the provider call is in flight.
	client.beforeReturn = func() {
		if err := orc.Reset(ctx, "user-1"); err != nil {
			t.Fatalf("Reset: %v", err)
		}
	}

	result, err := orc.Submit(ctx, "user-1", false, SubmitInput{DocumentText: "text"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Discarded {
		t.Fatalf("expected the in-flight result to be discarded")
	}

	st, _ := sessions.Load(ctx, "user-1")
	if st.Summary != nil || st.DocumentText != "" {
		t.Fatalf("expected empty session after reset, got %+v", st)
	}
	if recs, _ := hist.List(ctx, "user-1", "user-1", 0); len(recs) != 0 {
		t.Fatalf("expected nothing persisted after reset, got %d records", len(recs))
	}
}

func TestResetClearsAllSessionKeys(t *testing.T) {
	client := &stubClient{response: summaryJSON}
	orc, sessions, _ := newTestOrchestrator(client, nil)
	ctx := context.Background()

	if _, err := orc.Submit(ctx, "user-1", false, SubmitInput{DocumentText: "text", DocumentName: "doc.pdf"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := orc.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	st, err := sessions.Load(ctx, "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !st.Empty() || st.DocumentName != "" || st.EditingDocumentID != "" {
		t.Fatalf("expected cleared session, got %+v", st)
	}
	if st.Generation == 0 {
		t.Fatalf("expected generation bump on reset")
	}
}

func TestExtractStagesTextInSession(t *testing.T) {
	orc, sessions, _ := newTestOrchestrator(&stubClient{}, &stubRemote{text: "extracted text"})
	ctx := context.Background()

	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake"))
	ext, err := orc.Extract(ctx, "user-1", uri)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ext.Text != "extracted text" {
		t.Fatalf("unexpected text %q", ext.Text)
	}
	if ext.FileType != "pdf" {
		t.Fatalf("expected pdf file type, got %q", ext.FileType)
	}

	st, _ := sessions.Load(ctx, "user-1")
	if st.DocumentText != "extracted text" {
		t.Fatalf("expected staged text in session, got %q", st.DocumentText)
	}
}

func TestExtractInvalidPayloadIsValidationFault(t *testing.T) {
	orc, sessions, _ := newTestOrchestrator(&stubClient{}, &stubRemote{text: "x"})
	ctx := context.Background()

	_, err := orc.Extract(ctx, "user-1", "data:application/pdf;base64,!!!not-base64!!!")
	if !fault.Is(err, fault.KindValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}

	st, _ := sessions.Load(ctx, "user-1")
	if !st.Empty() {
		t.Fatalf("failed extraction must leave the session untouched, got %+v", st)
	}
}
