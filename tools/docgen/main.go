// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// Minimal doc generator:
// - Reads docs/commands/*.md as canonical command docs
// - Generates:
//   - docs/man/share/man1/cludder-<cmd>.1 via md2man (convert full markdown)
//   - docs/tldr/cludder-<cmd>.md using the Quick examples block and short description

const (
	binary  = "cludder"
	homeURL = "https://github.com/staranto/cludder"
)

func main() {
	var (
		repoRoot           string
		commandsDir        string
		manOutDir          string
		tldrOutDir         string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir = filepath.Join(repoRoot, "docs", "commands")
	manOutDir = filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir = filepath.Join(repoRoot, "docs", "tldr")

	if err := os.MkdirAll(manOutDir, 0o755); err != nil {
		fatalf("creating man output dir: %v", err)
	}
	if err := os.MkdirAll(tldrOutDir, 0o755); err != nil {
		fatalf("creating tldr output dir: %v", err)
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		fatalf("reading commands dir %s: %v", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		inPath := filepath.Join(commandsDir, e.Name())
		raw, err := os.ReadFile(inPath)
		if err != nil {
			fatalf("reading %s: %v", inPath, err)
		}

		man, tldr := renderPages(cmd, raw)
		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", binary, cmd))
		if err := writeFileIfChanged(manPath, man, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd, err)
		}
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", binary, cmd))
		if err := writeFileIfChanged(tldrPath, tldr, writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no command markdown found under %s", commandsDir)
	}
}

// renderPages converts one command doc into its man page and tldr page.
func renderPages(cmd string, raw []byte) (man, tldr []byte) {
	man = md2man.Render(raw)

	title, shortDesc := extractTitleAndShortDesc(string(raw))
	examples := extractQuickExamples(string(raw))
	tldr = []byte(buildTLDR(cmd, title, shortDesc, examples))
	return
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

var (
	h1Re          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	placeholderRe = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_.-]*)>`)
)

// section returns the text following the line that names a section,
// matched case-insensitively, or "" when there is none.
func section(md, name string) string {
	idx := strings.Index(strings.ToLower(md), strings.ToLower(name))
	if idx < 0 {
		return ""
	}
	rest := md[idx:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return rest[nl+1:]
	}
	return ""
}

func extractTitleAndShortDesc(md string) (title, short string) {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	// The first paragraph under "Short description", stopping at a header.
	var para []string
	for _, ln := range strings.Split(section(md, "short description"), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(ln, "#") || strings.HasSuffix(ln, ":") {
			break
		}
		para = append(para, ln)
	}
	short = strings.Join(para, " ")

	if short == "" && title != "" {
		short = title + "."
	}
	return
}

type example struct {
	Desc string
	Cmd  string
}

// extractQuickExamples reads the first fenced block under "Quick examples".
// A "# text" line describes the command lines after it.
func extractQuickExamples(md string) []example {
	const fence = "```"

	rest := section(md, "quick examples")
	open := strings.Index(rest, fence)
	if open < 0 {
		return nil
	}
	rest = rest[open+len(fence):]
	closing := strings.Index(rest, fence)
	if closing < 0 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(rest[:closing], "\n") {
		ln = strings.TrimSpace(ln)
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(ln, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: ln})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, title, short string, exs []example) string {
	var b strings.Builder
	// Header
	b.WriteString("# " + binary + "-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + short + "\n")
	} else if title != "" {
		b.WriteString("> " + title + "\n")
	} else {
		b.WriteString("> " + binary + " " + cmd + "\n")
	}
	b.WriteString("> More information: " + homeURL + ".\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`" + binary + " " + cmd + " --help`\n")
		b.WriteString("\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		// Ensure backticks and placeholder style
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

// sanitizeCommand compresses whitespace and turns <placeholder> into the
// {{placeholder}} form tldr clients highlight.
func sanitizeCommand(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return placeholderRe.ReplaceAllString(s, "{{$1}}")
}
