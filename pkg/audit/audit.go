// Package audit classifies engine audit results and validates user-supplied
// audit and category ids against a report.
package audit

import (
	"fmt"
	"sort"

	"github.com/lightkeeper-ci/lightkeeper/pkg/config"
	"github.com/lightkeeper-ci/lightkeeper/pkg/lighthouse"
)

// PassingScore is the engine-score floor (0..1 scale) below which a scored
// audit counts as failed.
const PassingScore = 0.75

// Status is the terminal classification of a single audit.
type Status int

const (
	// Failed means the audit scored below the passing floor or errored.
	Failed Status = 0
	// Passed means the audit scored at or above the passing floor.
	Passed Status = 1
	// NotApplicable means the score carries no pass/fail meaning
	// (manual review, informative, or not applicable to the page).
	NotApplicable Status = 2
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case NotApplicable:
		return "not applicable"
	default:
		return "failed"
	}
}

// Classify maps an audit to its pass/fail/not-applicable status. The display
// mode wins over the score: a manual audit is never failed, an errored audit
// is never passed.
func Classify(a lighthouse.Audit) Status {
	switch a.DisplayMode() {
	case lighthouse.ModeManual, lighthouse.ModeNotApplicable, lighthouse.ModeInformative:
		return NotApplicable
	case lighthouse.ModeError:
		return Failed
	}
	if a.ScoreValue() >= PassingScore {
		return Passed
	}
	return Failed
}

// FilterRefs returns the category's audit references to display. When
// AllAudits is unset and OnlyAudits is non-empty, only listed ids survive,
// in the category's original order. Otherwise every ref is kept.
func FilterRefs(cat lighthouse.Category, opts *config.Options) []lighthouse.AuditRef {
	if opts.AllAudits || len(opts.OnlyAudits) == 0 {
		return cat.AuditRefs
	}
	wanted := make(map[string]bool, len(opts.OnlyAudits))
	for _, id := range opts.OnlyAudits {
		wanted[id] = true
	}
	var out []lighthouse.AuditRef
	for _, ref := range cat.AuditRefs {
		if wanted[ref.ID] {
			out = append(out, ref)
		}
	}
	return out
}

// ValidateCategories checks that every score-threshold key names a category
// present in the report. The first unknown id (in sorted order, for stable
// messages) is a fatal configuration error.
func ValidateCategories(r *lighthouse.Report, opts *config.Options) error {
	ids := make([]string, 0, len(opts.Scores))
	for id := range opts.Scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !r.HasCategory(id) {
			return fmt.Errorf("%w: unknown category %q in score thresholds", config.ErrInvalidConfig, id)
		}
	}
	return nil
}

// ValidateAudits checks that every requested audit id is referenced by at
// least one category in the report.
func ValidateAudits(r *lighthouse.Report, opts *config.Options) error {
	for _, id := range opts.OnlyAudits {
		if !r.HasAuditRef(id) {
			return fmt.Errorf("%w: unknown audit %q in -audits", config.ErrInvalidConfig, id)
		}
	}
	return nil
}
