package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	sourcevfs "github.com/solium-lang/source-vfs"
	"github.com/solium-lang/source-vfs/vfs"
)

func main() {
	var (
		basePath     = flag.String("base", "", "Base path source unit names are relative to")
		includePaths = flag.String("include", "", "Include paths, comma-separated, consulted in order")
		allowDirs    = flag.String("allow", "", "Additional allowed directories, comma-separated")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if flag.NArg() == 0 && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: resolve [-base <dir>] [-include <dirs>] [-allow <dirs>] <source-unit-name>...")
		fmt.Fprintln(os.Stderr, "       resolve [-base <dir>] [-include <dirs>] [-allow <dirs>] -i  (interactive mode)")
		os.Exit(1)
	}

	reader, err := vfs.NewFileReader(*basePath, splitList(*includePaths), splitList(*allowDirs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(reader); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(reader, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(reader *vfs.FileReader, names []string) error {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	failures := 0
	for _, name := range names {
		result := reader.ReadFile(sourcevfs.KindReadFile, name)
		if !result.Success {
			failures++
			fmt.Println(renderError(styled, name, result.Value))
			continue
		}
		if len(names) > 1 {
			fmt.Println(renderHeader(styled, name))
		}
		fmt.Print(result.Value)
		if !strings.HasSuffix(result.Value, "\n") {
			fmt.Println()
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d source units unresolved", failures, len(names))
	}
	return nil
}

func renderHeader(styled bool, name string) string {
	header := "==> " + name
	if styled {
		return headerStyle.Render(header)
	}
	return header
}

func renderError(styled bool, name, message string) string {
	line := name + ": " + message
	if styled {
		return errorStyle.Render(line)
	}
	return line
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)
