// Package compare runs the full comparison of a rebuilt script against an
// original: input conversion, header checks, normalization and the HTML report.
package compare

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"adhoctool/internal/diag"
	"adhoctool/internal/diffreport"
	"adhoctool/internal/disasm"
	"adhoctool/internal/normalize"
	"adhoctool/internal/toolchain"
)

// DefaultOutput is the report path used when none is given.
const DefaultOutput = "comparison.html"

// NoLimit disables truncation.
const NoLimit = -1

// Options describes one comparison.
type Options struct {
	NewFile      string // .ad.diss, .adc or .ad
	OriginalFile string // .ad.diss or .adc
	Output       string

	// Limiter caps how much longer one stream may be than the other. NoLimit (or
	// any negative value) disables it.
	Limiter   int
	Normalize normalize.Options

	// Tool locates the toolchain. It is only called when an input needs converting.
	Tool func() (*toolchain.Tool, error)
}

// Result summarises a written report.
type Result struct {
	Output       string
	NewDump      string
	OriginalDump string
	Stats        diffreport.Stats
	Dropped      int
	Diags        []diag.Diag
}

// Run performs the comparison and writes the report. Missing tools and malformed
// headers stop it before anything is written; header mismatches are reported and
// the comparison continues.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}

	c := &converter{locate: opts.Tool}
	newDump, err := c.resolve(ctx, opts.NewFile, "new_file", true)
	if err != nil {
		return nil, err
	}
	origDump, err := c.resolve(ctx, opts.OriginalFile, "original_file", false)
	if err != nil {
		return nil, err
	}

	newDoc, newHdr, err := load(newDump)
	if err != nil {
		return nil, err
	}
	origDoc, origHdr, err := load(origDump)
	if err != nil {
		return nil, err
	}

	var d diag.Diags
	d.Append(disasm.CompareHeaders(newHdr, origHdr)...)

	newLines := normalize.Document(newDoc, opts.Normalize)
	origLines := normalize.Document(origDoc, opts.Normalize)

	newCut, origCut, dropped := normalize.Truncate(newLines, origLines, opts.Limiter)
	if dropped > 0 {
		name, kept := newDump, len(newCut)
		if len(origCut) < len(origLines) {
			name, kept = origDump, len(origCut)
		}
		d.Addf(diag.Truncated, diag.Warning, "%s truncated to %d lines by the limiter of %d (%d dropped)", name, kept, opts.Limiter, dropped)
	}

	slog.Debug("Normalized streams", "new", len(newCut), "original", len(origCut), "diags", d.Len())

	slog.Info("Building comparison...")
	rep, err := diffreport.Build(origCut, newCut, origDump, newDump, diffreport.WithNotes(d.Items()...))
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(opts.Output, rep.HTML, 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	slog.Info("Built report", "output", opts.Output)

	return &Result{
		Output:       opts.Output,
		NewDump:      newDump,
		OriginalDump: origDump,
		Stats:        rep.Stats,
		Dropped:      dropped,
		Diags:        d.Items(),
	}, nil
}

func load(path string) (*disasm.Document, disasm.Header, error) {
	doc, err := disasm.ReadFile(path)
	if err != nil {
		return nil, disasm.Header{}, err
	}
	hdr, err := doc.Header()
	if err != nil {
		return nil, disasm.Header{}, err
	}
	return doc, hdr, nil
}

// converter turns compiled inputs into dumps, locating the toolchain at most once.
type converter struct {
	locate func() (*toolchain.Tool, error)
	tool   *toolchain.Tool
}

func (c *converter) get() (*toolchain.Tool, error) {
	if c.tool != nil {
		return c.tool, nil
	}
	if c.locate == nil {
		c.locate = func() (*toolchain.Tool, error) { return toolchain.Locate("") }
	}
	t, err := c.locate()
	if err != nil {
		return nil, err
	}
	c.tool = t
	return t, nil
}

// resolve returns the dump path for input. Sources are only accepted when
// allowSource is set.
func (c *converter) resolve(ctx context.Context, input, role string, allowSource bool) (string, error) {
	path := input

	if allowSource && strings.HasSuffix(path, ".ad") {
		t, err := c.get()
		if err != nil {
			return "", fmt.Errorf("%s is an .ad file: %w", role, err)
		}
		if path, err = t.BuildInPlace(ctx, path); err != nil {
			return "", err
		}
		slog.Info("Ran adhoc to turn "+role+" .ad into a .adc", "file", path)
	}

	if strings.HasSuffix(path, ".adc") {
		t, err := c.get()
		if err != nil {
			return "", fmt.Errorf("%s is an .adc file: %w", role, err)
		}
		if path, err = t.Disassemble(ctx, path); err != nil {
			return "", err
		}
		slog.Info("Ran adhoc to turn "+role+" .adc into a .ad.diss", "file", path)
	}
	return path, nil
}
