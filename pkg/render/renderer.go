package render

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// Renderer applies a Context to templates using a fixed set of Fragments.
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	logger    *slog.Logger
	fragments Fragments
}

// Result describes a page written by RenderFile.
type Result struct {
	// Bytes is the size of the written page.
	Bytes int

	// Checksum is the hex encoded SHA-256 of the written page.
	Checksum string

	// Unresolved lists recognised tokens still present in the page, in token order.
	Unresolved []string
}

// NewRenderer creates a Renderer. A nil logger discards all output.
func NewRenderer(logger *slog.Logger, fragments Fragments) *Renderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		logger:    logger,
		fragments: fragments,
	}
}

var defaultRenderer = NewRenderer(nil, DefaultFragments())

// Render substitutes c into template using the default fragments.
func Render(template string, c Context) string {
	return defaultRenderer.Render(template, c)
}

// Render substitutes c into template.
//
// Every pass is a global, case-sensitive, literal replacement applied to the
// output of the previous pass. Inserted values are not rescanned by the pass
// that inserted them, but a later pass will match a token that an earlier
// value happened to contain.
func (r *Renderer) Render(template string, c Context) string {
	text := template

	text = r.replace(text, TokenMainTitle, c.Title)
	text = r.replace(text, TokenStory, c.Story)
	text = r.replace(text, TokenPlea, c.Plea)
	text = r.replace(text, TokenFriends, c.Friends)
	text = r.replace(text, TokenLikes, c.Likes)
	text = r.replace(text, TokenFollowers, c.Followers)

	if !c.Verified {
		text = r.strip(text, "verified", r.fragments.Verified)
	}
	if !c.FamousSupport {
		text = r.strip(text, "famous", r.fragments.Famous)
	} else {
		text = r.replace(text, TokenFamousPerson, c.FamousPerson)
	}

	text = r.replace(text, TokenProfilePic, c.ProfilePic)
	// The banner is substituted twice. The second pass only matters when the
	// banner path itself contains the token.
	text = r.replace(text, TokenBannerPic, c.BannerPic)
	text = r.replace(text, TokenBannerPic, c.BannerPic)
	text = r.replace(text, TokenTeamPic, c.TeamPic)

	return text
}

func (r *Renderer) replace(text, token, value string) string {
	n := strings.Count(text, token)
	if n == 0 {
		return text
	}
	r.logger.Debug("Replacing token", "token", token, "count", n)
	return strings.ReplaceAll(text, token, value)
}

func (r *Renderer) strip(text, name, fragment string) string {
	// An empty fragment would match between every character.
	if fragment == "" {
		return text
	}
	n := strings.Count(text, fragment)
	if n == 0 {
		return text
	}
	r.logger.Debug("Removing fragment", "fragment", name, "count", n)
	return strings.ReplaceAll(text, fragment, "")
}

// RenderFile reads the template at templatePath, renders it with c and writes
// the page to outputPath, replacing any existing file. Line endings of the
// template are normalized to LF before rendering.
// Read failures wrap ErrMissingTemplate and write failures wrap ErrUnwritableOutput.
func (r *Renderer) RenderFile(templatePath, outputPath string, c Context) (Result, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMissingTemplate, err)
	}
	r.logger.Debug("Loaded template", "path", templatePath, "bytes", len(raw))

	page := r.Render(normalizeNewlines(string(raw)), c)

	_, statErr := os.Stat(outputPath)
	if err = atomic.WriteFile(outputPath, strings.NewReader(page)); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
	}
	// atomic creates new files with 0600. New pages get a fixed 0644.
	if errors.Is(statErr, fs.ErrNotExist) {
		if err = os.Chmod(outputPath, 0o644); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrUnwritableOutput, err)
		}
	}

	sum := sha256.Sum256([]byte(page))
	res := Result{
		Bytes:      len(page),
		Checksum:   hex.EncodeToString(sum[:]),
		Unresolved: Unresolved(page),
	}
	r.logger.Info("Rendered page", "template", templatePath, "output", outputPath, "bytes", res.Bytes)
	return res, nil
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines turns CRLF and lone CR line endings into LF so that
// multi-line fragments match templates saved on Windows.
func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	return newlineReplacer.Replace(text)
}

// Unresolved returns the recognised tokens present in text, in token order.
func Unresolved(text string) []string {
	var left []string
	for _, token := range Tokens() {
		if strings.Contains(text, token) {
			left = append(left, token)
		}
	}
	return left
}
