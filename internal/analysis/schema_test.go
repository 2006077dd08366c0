package analysis

import (
	"testing"
)

func TestTimelineSortChronological(t *testing.T) {
	tl := Timeline{Timeline: []TimelineEvent{
		{Date: "2025-06-01", Event: "Rent increase"},
		{Date: "Monthly", Event: "Rent due"},
		{Date: "2025-01-15", Event: "Lease starts"},
		{Date: "upon signing", Event: "Deposit due"},
		{Date: "2025-06-01", Event: "Inspection"},
	}}
	tl.sortChronological()

	got := make([]string, 0, len(tl.Timeline))
	for _, ev := range tl.Timeline {
		got = append(got, ev.Event)
	}
	want := []string{"Lease starts", "Rent increase", "Inspection", "Rent due", "Deposit due"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q (order %v)", i, want[i], got[i], got)
		}
	}
}

func TestTimelineSortIsStableForEqualDates(t *testing.T) {
	tl := Timeline{Timeline: []TimelineEvent{
		{Date: "2025-03-01", Event: "first"},
		{Date: "2025-03-01", Event: "second"},
		{Date: "2025-03-01", Event: "third"},
	}}
	tl.sortChronological()
	if tl.Timeline[0].Event != "first" || tl.Timeline[1].Event != "second" || tl.Timeline[2].Event != "third" {
		t.Fatalf("equal dates must keep input order, got %+v", tl.Timeline)
	}
}

func TestPlainLanguageSummaryValidate(t *testing.T) {
	valid := PlainLanguageSummary{
		Summary: []SummaryPoint{{KeyPoint: "Rent", Description: "Due monthly."}},
		Dos:     []string{},
		Donts:   []string{},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	empty := PlainLanguageSummary{Dos: []string{}, Donts: []string{}}
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for empty summary")
	}

	missingLists := PlainLanguageSummary{Summary: valid.Summary}
	if err := missingLists.Validate(); err == nil {
		t.Fatalf("expected error for missing dos/donts")
	}
}

func TestRiskScoreValidateRange(t *testing.T) {
	base := RiskScore{RiskSummary: "moderate"}

	for _, score := range []int{0, 50, 100} {
		r := base
		r.RiskScore = score
		if err := r.Validate(); err != nil {
			t.Fatalf("score %d: expected valid, got %v", score, err)
		}
	}
	for _, score := range []int{-1, 101, 250} {
		r := base
		r.RiskScore = score
		if err := r.Validate(); err == nil {
			t.Fatalf("score %d: expected out-of-range error", score)
		}
	}
}

func TestRiskScoreValidateToneEnum(t *testing.T) {
	r := RiskScore{
		RiskScore:   40,
		RiskSummary: "moderate",
		ToneAnalysis: []ToneAnalysis{
			{Clause: "Section 4", Tone: "Aggressive", Explanation: "x"},
		},
	}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected error for unknown tone")
	}
	r.ToneAnalysis[0].Tone = ToneStrict
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid tone, got %v", err)
	}
}

func TestTimelineValidateRejectsEmptyFields(t *testing.T) {
	tl := Timeline{Timeline: []TimelineEvent{{Date: "", Event: "Lease starts"}}}
	if err := tl.Validate(); err == nil {
		t.Fatalf("expected error for empty date")
	}
	tl = Timeline{Timeline: []TimelineEvent{{Date: "2025-01-01", Event: ""}}}
	if err := tl.Validate(); err == nil {
		t.Fatalf("expected error for empty event")
	}
	if err := (Timeline{}).Validate(); err != nil {
		t.Fatalf("empty timeline is valid, got %v", err)
	}
}
