// Package doctor checks guide content for problems that a build would
// either reject or silently paper over.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/blocks"
	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/state"
	"github.com/jorge-barreto/guidebook/internal/toc"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

const maxLogLines = 40

type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Finding is one problem with one topic.
type Finding struct {
	Severity Severity
	Topic    string
	Source   string
	Message  string
}

func (f Finding) String() string {
	loc := f.Topic
	if f.Source != "" {
		loc += " (" + f.Source + ")"
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, loc, f.Message)
}

// ErrProblems is returned by Run when any finding is an error.
var ErrProblems = errors.New("content has errors")

// Check inspects raw records. Unlike content.Load it does not stop at the
// first duplicate title, so every problem is reported in one pass.
func Check(records []content.Record) []Finding {
	var findings []Finding
	add := func(sev Severity, r content.Record, format string, args ...any) {
		findings = append(findings, Finding{
			Severity: sev,
			Topic:    strings.TrimSpace(r.Title),
			Source:   r.Source,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	seen := make(map[string]bool, len(records))
	var unique []content.Topic
	for i, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			r.Title = fmt.Sprintf("#%d", i+1)
			add(Error, r, "%s", content.ErrEmptyTitle)
			continue
		}
		if seen[title] {
			add(Error, r, "%s", &content.DuplicateTitleError{Title: title})
		} else {
			seen[title] = true
			unique = append(unique, content.Topic{Title: title})
		}

		parsed := blocks.Parse(r.Body)
		if len(parsed.Blocks) == 0 {
			add(Warning, r, "body is empty")
		}
		if parsed.Unclosed {
			add(Error, r, "code fence is never closed")
		}
		for _, b := range parsed.Blocks {
			if b.Kind == blocks.Code && b.Lang == "" {
				add(Warning, r, "code block has no language")
				break
			}
		}
	}

	entries, err := toc.Build(unique)
	if errors.Is(err, toc.ErrEmptyContent) {
		findings = append(findings, Finding{Severity: Error, Topic: "guide", Message: err.Error()})
	}
	if err == nil {
		collisions := toc.Collisions(entries)
		for _, e := range entries {
			first, ok := collisions[e.Title]
			if !ok {
				continue
			}
			findings = append(findings, Finding{
				Severity: Warning,
				Topic:    e.Title,
				Message:  fmt.Sprintf("anchor collides with %q, using #%s", first, e.Anchor),
			})
		}
	}
	return findings
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

// Report prints findings, errors first.
func Report(w io.Writer, findings []Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, ux.StyleSuccess.Render("✓ No problems found."))
		return
	}
	sorted := append([]Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity == Error && sorted[j].Severity != Error
	})
	var errs, warns int
	for _, f := range sorted {
		style := ux.StyleWarning
		if f.Severity == Error {
			style = ux.StyleError
			errs++
		} else {
			warns++
		}
		fmt.Fprintf(w, "  %s\n", style.Render(f.String()))
	}
	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errs, warns)
}

// Run checks records, prints the report and, when the last build failed,
// what it left behind.
func Run(w io.Writer, stateDir string, records []content.Record) error {
	findings := Check(records)
	Report(w, findings)

	st, err := state.Load(stateDir)
	if err != nil {
		return fmt.Errorf("loading build state: %w", err)
	}
	if st != nil && (st.Status == state.StatusFailed || st.Status == state.StatusInterrupted) {
		fmt.Fprintf(w, "\n%s\n", ux.StyleTitle.Render(fmt.Sprintf("══ Last build %s at step %s ══", st.Status, st.Step)))
		if st.Error != "" {
			fmt.Fprintf(w, "%s\n", st.Error)
		}
		if st.Step == "post-build" {
			fmt.Fprintf(w, "\n%s\n", gatherLog(stateDir, "post-build"))
		}
	}

	if HasErrors(findings) {
		return ErrProblems
	}
	return nil
}

func gatherLog(stateDir, hook string) string {
	data, err := os.ReadFile(state.LogPath(stateDir, hook))
	if err != nil {
		return "(no log file found)"
	}
	text := strings.TrimRight(string(data), "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
		return fmt.Sprintf("... (truncated to last %d lines)\n%s", maxLogLines, strings.Join(lines, "\n"))
	}
	return text
}
