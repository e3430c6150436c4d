package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	scout "github.com/TFMV/scout/internal/find"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printer renders matched entries, tinting directory and symlink names
// when stdout is a terminal.
type printer struct {
	out     io.Writer
	format  *scout.PathFormatFilter
	dir     *color.Color
	symlink *color.Color
	colored bool
}

func newPrinter(out *os.File, format *scout.PathFormatFilter, noColor bool) *printer {
	return &printer{
		out:     out,
		format:  format,
		dir:     color.New(color.FgBlue, color.Bold),
		symlink: color.New(color.FgCyan),
		colored: !noColor && isatty.IsTerminal(out.Fd()),
	}
}

// print renders one entry found under root.
func (p *printer) print(root string, entry scout.Entry) {
	path := p.displayPath(root, entry.Path)
	if !p.colored {
		fmt.Fprintln(p.out, path)
		return
	}
	switch entry.Type {
	case scout.TypeDirectory:
		p.dir.Fprintln(p.out, path)
	case scout.TypeSymlink:
		p.symlink.Fprintln(p.out, path)
	default:
		fmt.Fprintln(p.out, path)
	}
}

// displayPath applies the chosen path format; without one, paths print
// as walked.
func (p *printer) displayPath(root, path string) string {
	if p.format == nil {
		return path
	}
	switch p.format.Format {
	case scout.FormatAbsolute:
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		return abs
	default:
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return path
		}
		return rel
	}
}
