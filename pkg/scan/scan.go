// Package scan drives a full audit for each configured URL: launch the
// browser, run the engine, validate the options against the report, and
// render either the audit catalog or the scored results.
package scan

import (
	"context"
	"fmt"
	"sort"

	"github.com/lightkeeper-ci/lightkeeper/pkg/audit"
	"github.com/lightkeeper-ci/lightkeeper/pkg/config"
	"github.com/lightkeeper-ci/lightkeeper/pkg/jsonutil"
	"github.com/lightkeeper-ci/lightkeeper/pkg/lighthouse"
	"github.com/lightkeeper-ci/lightkeeper/pkg/ui"
)

// Engine abstracts the auditing engine: URL in, report out.
type Engine interface {
	Audit(ctx context.Context, url string, port int) (*lighthouse.Report, error)
}

// BrowserHandle is a running browser the engine can connect to.
type BrowserHandle interface {
	Port() int
	Stop() error
}

// Launcher starts browser instances. One instance is launched and torn
// down per URL.
type Launcher interface {
	Launch(ctx context.Context) (BrowserHandle, error)
}

// Scanner orchestrates the per-URL scan loop.
type Scanner struct {
	Opts     *config.Options
	Engine   Engine
	Launcher Launcher
	Renderer *ui.Renderer
}

// Run scans every configured URL in sequence and returns the aggregated
// threshold-failure flag. Any error halts the remaining URLs: a broken
// configuration or a dead browser would fail them all identically.
func (s *Scanner) Run(ctx context.Context) (bool, error) {
	failed := false
	for _, url := range s.Opts.URLs {
		if !s.Opts.Quiet {
			s.Renderer.Progress(url)
		}
		urlFailed, err := s.ScanURL(ctx, url)
		if err != nil {
			return failed, err
		}
		failed = failed || urlFailed
	}
	return failed, nil
}

// ScanURL audits a single URL and renders its results. The returned flag is
// true when a category scored below its minimum or a displayed audit failed.
func (s *Scanner) ScanURL(ctx context.Context, url string) (bool, error) {
	if s.Opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Opts.Timeout)
		defer cancel()
	}

	report, err := s.runAudit(ctx, url)
	if err != nil {
		return false, err
	}

	if s.Opts.ShowAudits {
		s.renderAuditCatalog(report)
		return false, nil
	}

	if err := audit.ValidateCategories(report, s.Opts); err != nil {
		return false, err
	}
	if err := audit.ValidateAudits(report, s.Opts); err != nil {
		return false, err
	}

	failed := false
	if len(s.Opts.Scores) > 0 {
		failed = s.renderScores(report)
	}
	if s.renderAudits(report) {
		failed = true
	}
	return failed, nil
}

// runAudit launches the browser, runs the engine against it, and always
// tears the browser down, error path included.
func (s *Scanner) runAudit(ctx context.Context, url string) (*lighthouse.Report, error) {
	handle, err := s.Launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		if stopErr := handle.Stop(); stopErr != nil && s.Opts.Verbose {
			s.Renderer.Errorf("browser shutdown: %v", stopErr)
		}
	}()
	return s.Engine.Audit(ctx, url, handle.Port())
}

// renderAuditCatalog prints every category's audits with titles and
// descriptions. This view never evaluates pass/fail.
func (s *Scanner) renderAuditCatalog(report *lighthouse.Report) {
	for _, cat := range sortedCategories(report) {
		s.Renderer.Headline(cat.Title)
		for _, ref := range cat.AuditRefs {
			a := report.Audits[ref.ID]
			s.Renderer.AuditDescription(ref.ID, a.Title, a.Description, a.DisplayMode() == lighthouse.ModeManual)
		}
	}
}

// renderScores prints the threshold table and reports whether any category
// scored below its configured minimum. A configured minimum of 0 still
// produces a row; it just cannot fail.
func (s *Scanner) renderScores(report *lighthouse.Report) bool {
	failed := false
	rows := make([]ui.ScoreRow, 0, len(s.Opts.Scores))
	for id, min := range s.Opts.Scores {
		cat := report.Categories[id]
		score := cat.Score * 100
		passed := score >= min
		if !passed {
			failed = true
		}
		rows = append(rows, ui.ScoreRow{Title: cat.Title, Score: score, Min: min, Passed: passed})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Title < rows[j].Title })
	s.Renderer.ScoreTable(rows)
	return failed
}

// renderAudits prints each category's filtered audits: a JSON detail block
// for failures (or for everything under -extended-info), a compact table
// for the rest. Reports whether any audit failed.
func (s *Scanner) renderAudits(report *lighthouse.Report) bool {
	failed := false
	for _, cat := range sortedCategories(report) {
		refs := audit.FilterRefs(cat, s.Opts)
		if len(refs) == 0 {
			continue
		}
		s.Renderer.Headline(cat.Title)

		var rows []ui.AuditRow
		for _, ref := range refs {
			a := report.Audits[ref.ID]
			status := audit.Classify(a)
			if status == audit.Failed {
				failed = true
			}
			if status == audit.Failed || s.Opts.ExtendedInfo {
				if data, err := jsonutil.MarshalIndent(a, "  "); err == nil {
					s.Renderer.Detail(ref.ID, data)
					continue
				}
			}
			rows = append(rows, ui.AuditRow{ID: ref.ID, Status: status.String()})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		s.Renderer.AuditTable(rows)
	}
	return failed
}

// sortedCategories returns the report's categories ordered by title so the
// output is deterministic across runs.
func sortedCategories(report *lighthouse.Report) []lighthouse.Category {
	cats := make([]lighthouse.Category, 0, len(report.Categories))
	for _, cat := range report.Categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Title < cats[j].Title })
	return cats
}
