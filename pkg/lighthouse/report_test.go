package lighthouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightkeeper-ci/lightkeeper/pkg/jsonutil"
)

// lhrFixture is a trimmed Lighthouse report covering the fields this tool
// reads, including a null score and the legacy not-applicable spelling.
const lhrFixture = `{
	"requestedUrl": "https://example.com/",
	"finalUrl": "https://example.com/",
	"categories": {
		"performance": {
			"id": "performance",
			"title": "Performance",
			"score": 0.93,
			"auditRefs": [
				{"id": "first-contentful-paint", "weight": 10},
				{"id": "uses-http2", "weight": 0}
			]
		}
	},
	"audits": {
		"first-contentful-paint": {
			"id": "first-contentful-paint",
			"title": "First Contentful Paint",
			"description": "Marks the time at which the first text or image is painted.",
			"score": 0.98,
			"scoreDisplayMode": "numeric",
			"displayValue": "1.2 s"
		},
		"uses-http2": {
			"id": "uses-http2",
			"title": "Uses HTTP/2",
			"description": "HTTP/2 offers many benefits over HTTP/1.1.",
			"score": null,
			"scoreDisplayMode": "not-applicable"
		}
	}
}`

// TestReportDecode verifies a real-shaped LHR decodes into the model.
func TestReportDecode(t *testing.T) {
	var r Report
	require.NoError(t, jsonutil.Unmarshal([]byte(lhrFixture), &r))

	assert.Equal(t, "https://example.com/", r.RequestedURL)

	cat, ok := r.Categories["performance"]
	require.True(t, ok)
	assert.Equal(t, "Performance", cat.Title)
	assert.InDelta(t, 0.93, cat.Score, 1e-9)
	require.Len(t, cat.AuditRefs, 2)
	assert.Equal(t, "first-contentful-paint", cat.AuditRefs[0].ID)

	fcp := r.Audits["first-contentful-paint"]
	require.NotNil(t, fcp.Score)
	assert.InDelta(t, 0.98, *fcp.Score, 1e-9)

	h2 := r.Audits["uses-http2"]
	assert.Nil(t, h2.Score, "null score must decode to nil")
}

// TestDisplayModeNormalizesLegacySpelling verifies "not-applicable" maps to
// the modern constant while everything else passes through.
func TestDisplayModeNormalizesLegacySpelling(t *testing.T) {
	assert.Equal(t, ModeNotApplicable, Audit{ScoreDisplayMode: "not-applicable"}.DisplayMode())
	assert.Equal(t, ModeNotApplicable, Audit{ScoreDisplayMode: ModeNotApplicable}.DisplayMode())
	assert.Equal(t, ModeNumeric, Audit{ScoreDisplayMode: ModeNumeric}.DisplayMode())
	assert.Equal(t, "weird", Audit{ScoreDisplayMode: "weird"}.DisplayMode())
}

// TestScoreValueNilIsZero verifies null scores read as 0.
func TestScoreValueNilIsZero(t *testing.T) {
	assert.Zero(t, Audit{}.ScoreValue())
	v := 0.5
	assert.InDelta(t, 0.5, Audit{Score: &v}.ScoreValue(), 1e-9)
}

// TestHasAuditRef verifies membership is checked across all categories.
func TestHasAuditRef(t *testing.T) {
	var r Report
	require.NoError(t, jsonutil.Unmarshal([]byte(lhrFixture), &r))

	assert.True(t, r.HasAuditRef("uses-http2"))
	assert.False(t, r.HasAuditRef("no-such-audit"))
	assert.True(t, r.HasCategory("performance"))
	assert.False(t, r.HasCategory("seo"))
}
