// Package lighthouse invokes the Lighthouse auditing engine and models the
// slice of its report this tool consumes. The engine itself is a black box:
// we hand it a URL and a Chrome debugging port, it hands back a JSON report.
package lighthouse

// Score display modes as they appear in Lighthouse reports. The mode tells
// the consumer how to interpret an audit's score, not whether the page is
// good or bad.
const (
	ModeNumeric       = "numeric"
	ModeBinary        = "binary"
	ModeManual        = "manual"
	ModeInformative   = "informative"
	ModeNotApplicable = "notApplicable"
	ModeError         = "error"
)

// Report is the decoded subset of a Lighthouse result (LHR).
type Report struct {
	RequestedURL string              `json:"requestedUrl"`
	FinalURL     string              `json:"finalUrl,omitempty"`
	Categories   map[string]Category `json:"categories"`
	Audits       map[string]Audit    `json:"audits"`
}

// Category groups audits under an aggregate score (0..1).
type Category struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Score     float64    `json:"score"`
	AuditRefs []AuditRef `json:"auditRefs"`
}

// AuditRef is an ordered reference from a category to an audit.
type AuditRef struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight,omitempty"`
	Group  string  `json:"group,omitempty"`
}

// Audit is a single named check with a score and descriptive text.
// Score is a pointer because the engine emits null for manual,
// informative, and not-applicable audits.
type Audit struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Score            *float64 `json:"score"`
	ScoreDisplayMode string   `json:"scoreDisplayMode"`
	DisplayValue     string   `json:"displayValue,omitempty"`
}

// DisplayMode returns the audit's score display mode with legacy spellings
// normalized. Lighthouse 2.x wrote "not-applicable"; 3.x+ writes
// "notApplicable". Both are seen in the wild.
func (a Audit) DisplayMode() string {
	if a.ScoreDisplayMode == "not-applicable" {
		return ModeNotApplicable
	}
	return a.ScoreDisplayMode
}

// ScoreValue returns the audit's score, treating a null score as 0.
func (a Audit) ScoreValue() float64 {
	if a.Score == nil {
		return 0
	}
	return *a.Score
}

// HasCategory reports whether the report contains the given category id.
func (r *Report) HasCategory(id string) bool {
	_, ok := r.Categories[id]
	return ok
}

// HasAuditRef reports whether any category references the given audit id.
func (r *Report) HasAuditRef(id string) bool {
	for _, cat := range r.Categories {
		for _, ref := range cat.AuditRefs {
			if ref.ID == id {
				return true
			}
		}
	}
	return false
}
