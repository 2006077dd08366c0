package analysis

import (
	"fmt"
	"sort"
	"time"
)

// JSON schema (summary capability):
// {
//   "summary": [{"keyPoint": "string", "description": "string"}],
//   "dos": ["string"],
//   "donts": ["string"],
//   "lockInPeriod": "string (optional)",
//   "noticePeriod": "string (optional)",
//   "effectiveDate": "string YYYY-MM-DD (optional)"
// }
type PlainLanguageSummary struct {
	Summary       []SummaryPoint `json:"summary"`
	Dos           []string       `json:"dos"`
	Donts         []string       `json:"donts"`
	LockInPeriod  string         `json:"lockInPeriod,omitempty"`
	NoticePeriod  string         `json:"noticePeriod,omitempty"`
	EffectiveDate string         `json:"effectiveDate,omitempty"`
}

type SummaryPoint struct {
	KeyPoint    string `json:"keyPoint"`
	Description string `json:"description"`
}

func (s PlainLanguageSummary) Validate() error {
	if len(s.Summary) == 0 {
		return fmt.Errorf("summary: at least one key point required")
	}
	for i, p := range s.Summary {
		if p.KeyPoint == "" {
			return fmt.Errorf("summary[%d].keyPoint: empty", i)
		}
		if p.Description == "" {
			return fmt.Errorf("summary[%d].description: empty", i)
		}
	}
	if s.Dos == nil {
		return fmt.Errorf("dos: missing")
	}
	if s.Donts == nil {
		return fmt.Errorf("donts: missing")
	}
	return nil
}

// ClauseTone is the detected tone of a single clause.
type ClauseTone string

const (
	ToneFriendly ClauseTone = "Friendly"
	ToneNeutral  ClauseTone = "Neutral"
	ToneStrict   ClauseTone = "Strict"
)

type RiskScore struct {
	RiskScore      int            `json:"riskScore"`
	RiskSummary    string         `json:"riskSummary"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	ToneAnalysis   []ToneAnalysis `json:"toneAnalysis"`
}

type ScoreBreakdown struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

type ToneAnalysis struct {
	Clause      string     `json:"clause"`
	Tone        ClauseTone `json:"tone"`
	Explanation string     `json:"explanation"`
}

func (r RiskScore) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return fmt.Errorf("riskScore: %d out of range [0,100]", r.RiskScore)
	}
	if r.RiskSummary == "" {
		return fmt.Errorf("riskSummary: empty")
	}
	for i, t := range r.ToneAnalysis {
		switch t.Tone {
		case ToneFriendly, ToneNeutral, ToneStrict:
		default:
			return fmt.Errorf("toneAnalysis[%d].tone: unknown value %q", i, t.Tone)
		}
		if t.Clause == "" {
			return fmt.Errorf("toneAnalysis[%d].clause: empty", i)
		}
	}
	return nil
}

type Timeline struct {
	Timeline []TimelineEvent `json:"timeline"`
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

func (t Timeline) Validate() error {
	for i, ev := range t.Timeline {
		if ev.Date == "" {
			return fmt.Errorf("timeline[%d].date: empty", i)
		}
		if ev.Event == "" {
			return fmt.Errorf("timeline[%d].event: empty", i)
		}
	}
	return nil
}

// sortChronological orders events ascending by parsed calendar date. The sort
// is stable: ties keep their original order, and events whose date does not
// parse sort after all parseable ones.
func (t *Timeline) sortChronological() {
	parsed := make([]time.Time, len(t.Timeline))
	ok := make([]bool, len(t.Timeline))
	for i, ev := range t.Timeline {
		if ts, err := time.Parse("2006-01-02", ev.Date); err == nil {
			parsed[i], ok[i] = ts, true
		}
	}
	idx := make([]int, len(t.Timeline))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if ok[ia] != ok[ib] {
			return ok[ia]
		}
		if !ok[ia] {
			return false
		}
		return parsed[ia].Before(parsed[ib])
	})
	out := make([]TimelineEvent, len(t.Timeline))
	for i, j := range idx {
		out[i] = t.Timeline[j]
	}
	t.Timeline = out
}

type ExampleSet struct {
	Examples []Example `json:"examples"`
}

type Example struct {
	Clause  string `json:"clause"`
	Example string `json:"example"`
}

func (e ExampleSet) Validate() error {
	for i, ex := range e.Examples {
		if ex.Clause == "" || ex.Example == "" {
			return fmt.Errorf("examples[%d]: clause and example required", i)
		}
	}
	return nil
}

type NegotiationSuggestionSet struct {
	Suggestions []NegotiationSuggestion `json:"suggestions"`
}

type NegotiationSuggestion struct {
	Clause     string `json:"clause"`
	Suggestion string `json:"suggestion"`
}

func (n NegotiationSuggestionSet) Validate() error {
	for i, s := range n.Suggestions {
		if s.Clause == "" || s.Suggestion == "" {
			return fmt.Errorf("suggestions[%d]: clause and suggestion required", i)
		}
	}
	return nil
}

type TermDefinition struct {
	Definition string `json:"definition"`
}

func (t TermDefinition) Validate() error {
	if t.Definition == "" {
		return fmt.Errorf("definition: empty")
	}
	return nil
}

type WhatIfAnswer struct {
	Answer string `json:"answer"`
}

func (w WhatIfAnswer) Validate() error {
	if w.Answer == "" {
		return fmt.Errorf("answer: empty")
	}
	return nil
}
