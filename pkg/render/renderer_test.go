package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestRenderer() *Renderer {
	return NewRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultFragments())
}

func readTestTemplate(tb testing.TB) string {
	tb.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "template1.html"))
	if err != nil {
		tb.Fatalf("failed to read test template: %v", err)
	}
	return string(raw)
}

func TestRender_SingleToken(t *testing.T) {
	c := DefaultContext()
	cases := []struct {
		token string
		value string
	}{
		{TokenMainTitle, c.Title},
		{TokenStory, c.Story},
		{TokenPlea, c.Plea},
		{TokenFriends, c.Friends},
		{TokenLikes, c.Likes},
		{TokenFollowers, c.Followers},
		{TokenFamousPerson, c.FamousPerson},
		{TokenProfilePic, c.ProfilePic},
		{TokenBannerPic, c.BannerPic},
		{TokenTeamPic, c.TeamPic},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			tmpl := "<p>before " + tc.token + " after</p>"
			want := "<p>before " + tc.value + " after</p>"
			if diff := cmp.Diff(want, Render(tmpl, c)); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_AbsentTokensAreNoOps(t *testing.T) {
	tmpl := "<html><body>nothing to see # here #MainTitle</body></html>"
	if got := Render(tmpl, DefaultContext()); got != tmpl {
		t.Errorf("expected template without tokens to be unchanged, got %q", got)
	}
	if got := Render("", DefaultContext()); got != "" {
		t.Errorf("expected empty template to render empty, got %q", got)
	}
}

func TestRender_ReplacesEveryOccurrence(t *testing.T) {
	c := DefaultContext()
	c.BannerPic = "./b.png"
	got := Render(`<img src="#BannerPic#"><img src="#BannerPic#">`, c)
	want := `<img src="./b.png"><img src="./b.png">`
	if got != want {
		t.Errorf("expected both banner tokens replaced, got %q", got)
	}
}

func TestRender_CaseSensitive(t *testing.T) {
	tmpl := "#maintitle# #MAINTITLE#"
	if got := Render(tmpl, DefaultContext()); got != tmpl {
		t.Errorf("expected tokens with different case to be left alone, got %q", got)
	}
}

func TestRender_VerifiedFragment(t *testing.T) {
	tmpl := "<h1>#MainTitle#" + VerifiedFragment + "</h1><p>" + VerifiedFragment + "</p>"
	c := DefaultContext()

	c.Verified = false
	got := Render(tmpl, c)
	if strings.Contains(got, VerifiedFragment) {
		t.Error("verified fragment should be removed when Verified is false")
	}
	if want := "<h1>Example title</h1><p></p>"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	c.Verified = true
	got = Render(tmpl, c)
	if n := strings.Count(got, VerifiedFragment); n != 2 {
		t.Errorf("verified fragment should be kept verbatim when Verified is true, found %d copies", n)
	}
}

func TestRender_FamousFragment(t *testing.T) {
	tmpl := "<main>" + FamousFragment + "</main><p>#FamousPerson# again</p>"
	c := DefaultContext()

	t.Run("Supported", func(t *testing.T) {
		c := c
		c.FamousSupport = true
		c.FamousPerson = "Ada Lovelace"
		got := Render(tmpl, c)
		if strings.Contains(got, TokenFamousPerson) {
			t.Errorf("no #FamousPerson# token should remain, got %q", got)
		}
		if n := strings.Count(got, "Ada Lovelace"); n != 2 {
			t.Errorf("expected famous person inserted twice, found %d", n)
		}
		want := strings.ReplaceAll(FamousFragment, TokenFamousPerson, "Ada Lovelace")
		if !strings.Contains(got, want) {
			t.Error("endorsement fragment should be kept with the name filled in")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		c := c
		c.FamousSupport = false
		c.FamousPerson = "Ada Lovelace"
		got := Render(tmpl, c)
		if want := "<main></main><p>#FamousPerson# again</p>"; got != want {
			t.Errorf("expected fragment removed and stray token untouched, got %q", got)
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		c := c
		c.FamousSupport = true
		c.FamousPerson = ""
		got := Render(FamousFragment, c)
		if !strings.Contains(got, `id="u_0_1i"></a> supports this`) {
			t.Errorf("expected fragment rendered with an empty name, got %q", got)
		}
	})
}

func TestRender_SequentialPasses(t *testing.T) {
	c := DefaultContext()
	c.Title = "title of #Story#"
	c.Story = "the story mentions #MainTitle#"
	got := Render("#MainTitle#", c)
	// The title pass has already run when the story is inserted.
	if want := "title of the story mentions #MainTitle#"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_CustomFragments(t *testing.T) {
	r := NewRenderer(nil, Fragments{Verified: "<b>check</b>", Famous: ""})
	c := DefaultContext()
	c.Verified = false
	c.FamousSupport = false
	got := r.Render("a<b>check</b>b #FamousPerson#", c)
	if want := "ab #FamousPerson#"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_StockTemplate(t *testing.T) {
	tmpl := readTestTemplate(t)
	got := Render(tmpl, DefaultContext())

	for _, s := range []string{"Example title", "This is the story", "This is the plea", "10", "1,000", "100,000", "Someone famous"} {
		if !strings.Contains(got, s) {
			t.Errorf("rendered page is missing %q", s)
		}
	}
	if left := Unresolved(got); len(left) != 0 {
		t.Errorf("expected no unresolved tokens, got %v", left)
	}
	if !strings.Contains(got, VerifiedFragment) {
		t.Error("verified fragment should survive with the default context")
	}
	if strings.Count(got, "./images/ows.jpg") != 2 {
		t.Error("expected both banner images to be filled in")
	}
}

func TestUnresolved(t *testing.T) {
	text := "#TeamPic# #Story# #Story# plain"
	want := []string{TokenStory, TokenTeamPic}
	if diff := cmp.Diff(want, Unresolved(text)); diff != "" {
		t.Errorf("Unresolved mismatch (-want +got):\n%s", diff)
	}
	if left := Unresolved("plain"); left != nil {
		t.Errorf("expected nil for text without tokens, got %v", left)
	}
}

func TestRenderFile(t *testing.T) {
	r := newTestRenderer()
	dir := t.TempDir()
	out := filepath.Join(dir, "example.html")

	res, err := r.RenderFile(filepath.Join("testdata", "template1.html"), out, DefaultContext())
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read rendered page: %v", err)
	}
	want := Render(readTestTemplate(t), DefaultContext())
	if diff := cmp.Diff(want, string(written)); diff != "" {
		t.Errorf("written page mismatch (-want +got):\n%s", diff)
	}
	if res.Bytes != len(written) {
		t.Errorf("expected Bytes %d, got %d", len(written), res.Bytes)
	}
	if len(res.Checksum) != 64 {
		t.Errorf("expected a hex SHA-256 checksum, got %q", res.Checksum)
	}
	if len(res.Unresolved) != 0 {
		t.Errorf("expected no unresolved tokens, got %v", res.Unresolved)
	}
	for _, token := range []string{TokenMainTitle, TokenStory, TokenFriends, TokenLikes, TokenFollowers, TokenFamousPerson} {
		if bytes.Contains(written, []byte(token)) {
			t.Errorf("rendered page still contains %s", token)
		}
	}
}

func TestRenderFile_OverwritesExisting(t *testing.T) {
	r := newTestRenderer()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.html")
	if err := os.WriteFile(in, []byte("#Plea#"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	if err := os.WriteFile(out, []byte("a much longer stale page"), 0644); err != nil {
		t.Fatalf("failed to write stale output: %v", err)
	}

	if _, err := r.RenderFile(in, out, DefaultContext()); err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	written, _ := os.ReadFile(out)
	if string(written) != "This is the plea" {
		t.Errorf("expected output to be replaced, got %q", written)
	}
}

func TestRenderFile_CRLFTemplate(t *testing.T) {
	r := newTestRenderer()
	dir := t.TempDir()
	in := filepath.Join(dir, "template1.html")
	out := filepath.Join(dir, "example.html")

	lf := readTestTemplate(t)
	crlf := strings.ReplaceAll(lf, "\n", "\r\n")
	if err := os.WriteFile(in, []byte(crlf), 0644); err != nil {
		t.Fatalf("failed to write CRLF template: %v", err)
	}

	c := DefaultContext()
	c.FamousSupport = false
	if _, err := r.RenderFile(in, out, c); err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read rendered page: %v", err)
	}
	if bytes.Contains(written, []byte("supports this")) {
		t.Error("endorsement fragment should be removed from a CRLF template")
	}
	if bytes.Contains(written, []byte(TokenFamousPerson)) {
		t.Error("no #FamousPerson# token should remain")
	}
	if bytes.Contains(written, []byte("\r")) {
		t.Error("rendered page should use LF line endings")
	}
	if diff := cmp.Diff(Render(lf, c), string(written)); diff != "" {
		t.Errorf("CRLF page differs from LF page (-want +got):\n%s", diff)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := map[string]string{
		"a\r\nb":   "a\nb",
		"a\rb":     "a\nb",
		"a\r\r\nb": "a\n\nb",
		"a\nb":     "a\nb",
		"":         "",
	}
	for in, want := range cases {
		if got := normalizeNewlines(in); got != want {
			t.Errorf("normalizeNewlines(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderFile_NewFileMode(t *testing.T) {
	r := newTestRenderer()
	out := filepath.Join(t.TempDir(), "example.html")
	if _, err := r.RenderFile(filepath.Join("testdata", "template1.html"), out, DefaultContext()); err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("failed to stat rendered page: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o644 {
		t.Errorf("expected new page mode 0644, got %o", mode)
	}
}

func TestRenderFile_MissingTemplate(t *testing.T) {
	r := newTestRenderer()
	dir := t.TempDir()
	out := filepath.Join(dir, "example.html")

	_, err := r.RenderFile(filepath.Join(dir, "nope.html"), out, DefaultContext())
	if !errors.Is(err, ErrMissingTemplate) {
		t.Fatalf("expected ErrMissingTemplate, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the underlying not-exist error to be wrapped, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no output file should be created when the template is missing")
	}
}

func TestRenderFile_UnwritableOutput(t *testing.T) {
	r := newTestRenderer()
	out := filepath.Join(t.TempDir(), "missing-dir", "example.html")

	_, err := r.RenderFile(filepath.Join("testdata", "template1.html"), out, DefaultContext())
	if !errors.Is(err, ErrUnwritableOutput) {
		t.Fatalf("expected ErrUnwritableOutput, got %v", err)
	}
}

// BenchmarkRender measures a full render of the stock template.
func BenchmarkRender(b *testing.B) {
	tmpl := readTestTemplate(b)
	c := DefaultContext()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Render(tmpl, c)
	}
}
