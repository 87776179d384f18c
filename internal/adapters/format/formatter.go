// Package format renders a Status into a prompt string using the
// configured templates and colors.
package format

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/xvierd/vcprompt/internal/config"
	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
)

var escapeSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Formatter implements ports.Formatter.
type Formatter struct {
	cfg      config.Config
	renderer *lipgloss.Renderer
	colored  bool
	shell    string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) Option {
	return func(f *Formatter) {
		f.colored = enabled
	}
}

// WithShell wraps escape sequences so the given shell does not count them
// towards the prompt width.
func WithShell(shell string) Option {
	return func(f *Formatter) {
		f.shell = shell
	}
}

// New creates a formatter. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Formatter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	f := &Formatter{cfg: *cfg}
	for _, opt := range opts {
		opt(f)
	}

	// Prompts are captured by the shell, so stdout is never a terminal
	// here; pick the profile explicitly instead of detecting it.
	f.renderer = lipgloss.NewRenderer(io.Discard)
	if f.colored {
		f.renderer.SetColorProfile(termenv.TrueColor)
	} else {
		f.renderer.SetColorProfile(termenv.Ascii)
	}
	return f
}

// Ensure Formatter implements ports.Formatter.
var _ ports.Formatter = (*Formatter)(nil)

// Format renders status. A nil status renders as an empty string.
func (f *Formatter) Format(status *domain.Status) string {
	if status == nil {
		return ""
	}

	t := f.cfg.Template
	c := f.cfg.Colors

	name := strings.NewReplacer(
		"{symbol}", f.escape(status.Symbol),
		"{name}", f.escape(status.Name),
		"{value}", f.escape(status.Name),
	).Replace(t.Name)

	segments := []string{
		"{name}", f.style(name, c.Name),
		"{branch}", f.segment(t.Branch, f.escape(status.Branch), c.Branch),
		"{operations}", f.segment(t.Operations, f.escape(strings.Join(status.Operations, "|")), c.Operations),
		"{ahead}", f.count(t.Ahead, status.Ahead, c.Ahead),
		"{behind}", f.count(t.Behind, status.Behind, c.Behind),
		"{conflicts}", f.count(t.Conflicts, status.Conflicts, c.Conflicts),
		"{staged}", f.count(t.Staged, status.Staged, c.Staged),
		"{changed}", f.count(t.Changed, status.Changed, c.Changed),
		"{untracked}", f.count(t.Untracked, status.Untracked, c.Untracked),
		"{commit}", f.segment(t.Commit, f.escape(status.Commit), c.Commit),
		"{clean}", "",
	}
	if status.IsClean() {
		segments[len(segments)-1] = f.style(t.Clean, c.Clean)
	}

	out := f.cfg.Prefix + strings.NewReplacer(segments...).Replace(f.cfg.Format) + f.cfg.Suffix
	return f.markZeroWidth(out)
}

// segment renders tmpl with value, or nothing when value is empty.
func (f *Formatter) segment(tmpl, value, color string) string {
	if value == "" {
		return ""
	}
	return f.style(strings.ReplaceAll(tmpl, "{value}", value), color)
}

// count renders tmpl with n, or nothing when n is zero.
func (f *Formatter) count(tmpl string, n uint, color string) string {
	if n == 0 {
		return ""
	}
	return f.segment(tmpl, strconv.FormatUint(uint64(n), 10), color)
}

func (f *Formatter) style(s, color string) string {
	if !f.colored || color == "" || s == "" {
		return s
	}
	return f.renderer.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

// escape quotes prompt metacharacters in repository-supplied values.
// zsh expands % sequences in command substitution output under PROMPT_SUBST.
func (f *Formatter) escape(value string) string {
	if f.shell == config.ShellZsh {
		return strings.ReplaceAll(value, "%", "%%")
	}
	return value
}

// markZeroWidth wraps escape sequences so the shell excludes them from the
// prompt width. bash decodes \[ \] before command substitution runs, so
// output of $(vcprompt) must carry readline's raw \001 \002 markers.
func (f *Formatter) markZeroWidth(s string) string {
	switch f.shell {
	case config.ShellBash:
		return escapeSeq.ReplaceAllString(s, "\x01$0\x02")
	case config.ShellZsh:
		return escapeSeq.ReplaceAllString(s, "%{$0%}")
	default:
		return s
	}
}

// ShouldColor resolves a color mode against the output file descriptor.
// In auto mode colors are used for terminals unless NO_COLOR is set.
func ShouldColor(mode string, fd uintptr) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return term.IsTerminal(fd)
	}
}
