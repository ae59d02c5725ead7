package audit

import (
	"errors"
	"strings"
	"testing"

	"github.com/lightkeeper-ci/lightkeeper/pkg/config"
	"github.com/lightkeeper-ci/lightkeeper/pkg/lighthouse"
)

func score(v float64) *float64 { return &v }

// TestClassifyModeWinsOverScore verifies that manual, not-applicable and
// informative audits are never pass/fail regardless of score.
func TestClassifyModeWinsOverScore(t *testing.T) {
	modes := []string{
		lighthouse.ModeManual,
		lighthouse.ModeNotApplicable,
		lighthouse.ModeInformative,
		"not-applicable", // legacy spelling
	}
	for _, mode := range modes {
		for _, s := range []*float64{nil, score(0), score(1)} {
			a := lighthouse.Audit{ScoreDisplayMode: mode, Score: s}
			if got := Classify(a); got != NotApplicable {
				t.Errorf("Classify(mode=%s, score=%v) = %v, want NotApplicable", mode, s, got)
			}
		}
	}
}

// TestClassifyErrorAlwaysFails verifies errored audits fail even with a
// perfect score.
func TestClassifyErrorAlwaysFails(t *testing.T) {
	a := lighthouse.Audit{ScoreDisplayMode: lighthouse.ModeError, Score: score(1)}
	if got := Classify(a); got != Failed {
		t.Errorf("Classify(error, score=1) = %v, want Failed", got)
	}
}

// TestClassifyScoreBoundary verifies the 0.75 passing floor is inclusive.
func TestClassifyScoreBoundary(t *testing.T) {
	tests := []struct {
		mode  string
		score *float64
		want  Status
	}{
		{lighthouse.ModeNumeric, score(0.75), Passed},
		{lighthouse.ModeNumeric, score(0.7499), Failed},
		{lighthouse.ModeBinary, score(1), Passed},
		{lighthouse.ModeBinary, score(0), Failed},
		{"", score(0.9), Passed},     // unknown mode falls through to score
		{"weird", score(0.5), Failed}, // unknown mode falls through to score
		{lighthouse.ModeNumeric, nil, Failed}, // null score counts as 0
	}
	for _, tt := range tests {
		a := lighthouse.Audit{ScoreDisplayMode: tt.mode, Score: tt.score}
		if got := Classify(a); got != tt.want {
			t.Errorf("Classify(mode=%q, score=%v) = %v, want %v", tt.mode, tt.score, got, tt.want)
		}
	}
}

// TestStatusString verifies the user-facing status labels.
func TestStatusString(t *testing.T) {
	if Passed.String() != "passed" || Failed.String() != "failed" || NotApplicable.String() != "not applicable" {
		t.Errorf("unexpected status labels: %s %s %s", Passed, Failed, NotApplicable)
	}
}

func refs(ids ...string) []lighthouse.AuditRef {
	out := make([]lighthouse.AuditRef, len(ids))
	for i, id := range ids {
		out[i] = lighthouse.AuditRef{ID: id}
	}
	return out
}

// TestFilterRefsOnlyAudits verifies filtering keeps only requested ids in
// the category's original order.
func TestFilterRefsOnlyAudits(t *testing.T) {
	cat := lighthouse.Category{AuditRefs: refs("a", "b", "c")}
	opts := &config.Options{OnlyAudits: []string{"b", "a"}}

	got := FilterRefs(cat, opts)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("FilterRefs = %v, want [a b] in original order", got)
	}
}

// TestFilterRefsAllAudits verifies -all-audits overrides the audit filter.
func TestFilterRefsAllAudits(t *testing.T) {
	cat := lighthouse.Category{AuditRefs: refs("a", "b", "c")}
	opts := &config.Options{OnlyAudits: []string{"a", "b"}, AllAudits: true}

	if got := FilterRefs(cat, opts); len(got) != 3 {
		t.Errorf("FilterRefs with AllAudits = %v, want all 3 refs", got)
	}
}

// TestFilterRefsNoFilter verifies an empty filter keeps everything.
func TestFilterRefsNoFilter(t *testing.T) {
	cat := lighthouse.Category{AuditRefs: refs("a", "b")}
	if got := FilterRefs(cat, &config.Options{}); len(got) != 2 {
		t.Errorf("FilterRefs with no filter = %v, want all refs", got)
	}
}

func testReport() *lighthouse.Report {
	return &lighthouse.Report{
		Categories: map[string]lighthouse.Category{
			"foo": {ID: "foo", Title: "Foo", AuditRefs: refs("x", "y")},
		},
	}
}

// TestValidateCategoriesUnknown verifies an unknown threshold category is a
// configuration error naming the offender.
func TestValidateCategoriesUnknown(t *testing.T) {
	opts := &config.Options{Scores: map[string]float64{"bar": 50}}
	err := ValidateCategories(testReport(), opts)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
	if want := `"bar"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should name the unknown category %s", err, want)
	}
}

// TestValidateCategoriesKnown verifies a known category passes.
func TestValidateCategoriesKnown(t *testing.T) {
	opts := &config.Options{Scores: map[string]float64{"foo": 50}}
	if err := ValidateCategories(testReport(), opts); err != nil {
		t.Errorf("ValidateCategories = %v, want nil", err)
	}
}

// TestValidateAudits verifies audit id membership is checked against the
// categories' audit reference lists.
func TestValidateAudits(t *testing.T) {
	known := &config.Options{OnlyAudits: []string{"x"}}
	if err := ValidateAudits(testReport(), known); err != nil {
		t.Errorf("ValidateAudits(known) = %v, want nil", err)
	}

	unknown := &config.Options{OnlyAudits: []string{"z"}}
	err := ValidateAudits(testReport(), unknown)
	if err == nil {
		t.Fatal("expected error for unknown audit id")
	}
	if !strings.Contains(err.Error(), `"z"`) {
		t.Errorf("error %q should name the unknown audit", err)
	}
}
