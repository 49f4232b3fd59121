package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"aether/internal/diag"
	"aether/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	gutterColor  = color.New(color.FgHiBlack)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders the bag in a human-readable form, one block per
// diagnostic: a header line, the offending source line with a caret
// underline, then any notes. Callers sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, fs, d.Severity, d.Code, d.Primary, d.Message, opts)
		writeContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeNote(w, fs, note, opts)
			}
		}
		fmt.Fprintln(w)
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, sev diag.Severity, code diag.Code, sp source.Span, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(sp)
	path := displayPath(fs, sp.File, opts.PathMode)

	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, code.ID(), msg)
}

func writeNote(w io.Writer, fs *source.FileSet, note diag.Note, opts PrettyOpts) {
	start, _ := fs.Resolve(note.Span)
	path := displayPath(fs, note.Span.File, opts.PathMode)
	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}
	fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", label, path, start.Line, start.Col, note.Msg)
	writeContext(w, fs, note.Span, opts)
}

// writeContext prints the source line the span starts on, plus up to
// opts.Context surrounding lines, with a caret underline under the span.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if opts.Context < 0 {
		return
	}
	file := fs.Get(sp.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)

	first := start.Line
	if ctx := uint32(opts.Context); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(opts.Context)

	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		if text == "" && line != start.Line {
			continue
		}
		gutter := fmt.Sprintf("%5d | ", line)
		if opts.Color {
			gutter = gutterColor.Sprint(gutter)
		}
		fmt.Fprintf(w, "%s%s\n", gutter, text)
		if line == start.Line {
			writeUnderline(w, start, end, opts)
		}
	}
}

func writeUnderline(w io.Writer, start, end source.LineCol, opts PrettyOpts) {
	if start.Col == 0 {
		return
	}
	pad := strings.Repeat(" ", int(start.Col-1))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	marks := "^"
	if width > 1 {
		marks += strings.Repeat("~", width-1)
	}
	if opts.Color {
		marks = caretColor.Sprint(marks)
	}
	fmt.Fprintf(w, "      | %s%s\n", pad, marks)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	file := fs.Get(id)
	if file == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(file.Path); err == nil {
			return abs
		}
		return file.Path
	case PathModeRelative:
		base := fs.BaseDir()
		if base == "" {
			return file.Path
		}
		if rel, err := filepath.Rel(base, file.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return file.Path
	case PathModeBasename:
		return filepath.Base(file.Path)
	default:
		return file.Path
	}
}
