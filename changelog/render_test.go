package changelog

import (
	"strings"
	"testing"

	"github.com/kellnr/site-feed/model"
	"github.com/stretchr/testify/assert"
)

func TestRender_NoEntries(t *testing.T) {
	r := NewRenderer("Kellnr", "the private Rust registry")

	got := r.Render(&model.Release{Version: "1.0.0"})

	assert.Equal(t, "Version 1.0.0 of Kellnr, the private Rust registry, is released.", got)
}

func TestRender_GroupsByType(t *testing.T) {
	r := NewRenderer("Kellnr", "the private Rust registry")
	release := &model.Release{
		Version: "5.3.0",
		Entries: []model.ChangeLogEntry{
			{Type: "Security", Content: "Patched <i>tar</i> extraction"},
			{Type: "Performance", Content: "Faster rebuilds"},
			{Type: "Added", Content: "Sparse index"},
			{Type: "Fixed", Content: "Search ignores case"},
			{Type: "Added", Content: "Webhooks"},
			{Type: "", Content: "Untyped change"},
			{Type: "Docs", Content: "New guide"},
		},
	}

	want := strings.Join([]string{
		"Version 5.3.0 of Kellnr, the private Rust registry, is released.",
		"<br/>",
		"<strong>Added:</strong>",
		"<ul>",
		"<li>Sparse index</li>",
		"<li>Webhooks</li>",
		"</ul>",
		"<br/>",
		"<strong>Changed:</strong>",
		"<ul>",
		"<li>Untyped change</li>",
		"</ul>",
		"<br/>",
		"<strong>Fixed:</strong>",
		"<ul>",
		"<li>Search ignores case</li>",
		"</ul>",
		"<br/>",
		"<strong>Security:</strong>",
		"<ul>",
		"<li>Patched <i>tar</i> extraction</li>",
		"</ul>",
		"<br/>",
		"<strong>Performance:</strong>",
		"<ul>",
		"<li>Faster rebuilds</li>",
		"</ul>",
		"<br/>",
		"<strong>Docs:</strong>",
		"<ul>",
		"<li>New guide</li>",
		"</ul>",
	}, "\n")

	assert.Equal(t, want, r.Render(release))
}

func TestRender_Links(t *testing.T) {
	r := NewRenderer("Kellnr", "")
	release := &model.Release{
		Version: "5.1.0",
		Entries: []model.ChangeLogEntry{
			{
				Type:    "Fixed",
				Content: "Resolved a crash",
				Links: []model.Link{
					{Label: `Issue <#1> & "more"`, URL: "https://example.com/?a=1&b=2"},
					{URL: "https://example.com/2"},
				},
			},
		},
	}

	got := r.Render(release)

	assert.Contains(t, got, "Version 5.1.0 of Kellnr is released.")
	assert.Contains(t, got,
		`<li>Resolved a crash <a href="https://example.com/?a=1&amp;b=2" target="_blank" rel="noopener noreferrer">Issue &lt;#1&gt; &amp; &quot;more&quot;</a>`+
			` <a href="https://example.com/2" target="_blank" rel="noopener noreferrer">https://example.com/2</a></li>`)
	assert.NotContains(t, got, "<#1>")
}

func TestRender_EscapesVersionAndType(t *testing.T) {
	r := NewRenderer("Kellnr", "")
	release := &model.Release{
		Version: "1.0.0<beta>",
		Entries: []model.ChangeLogEntry{{Type: "A&B", Content: "x"}},
	}

	got := r.Render(release)

	assert.Contains(t, got, "Version 1.0.0&lt;beta&gt; of Kellnr is released.")
	assert.Contains(t, got, "<strong>A&amp;B:</strong>")
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&apos;", EscapeXML(`&<>"'`))
	assert.Equal(t, "plain", EscapeXML("plain"))
	assert.Equal(t, "&amp;amp;", EscapeXML("&amp;"))
}
