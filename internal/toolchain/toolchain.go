// Package toolchain locates and invokes the external Adhoc compiler/disassembler
// executable (adhoc.exe).
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrMissingTool is matched by every *MissingToolError.
var ErrMissingTool = errors.New("adhoc toolchain not found")

// MissingToolError reports that no usable executable was found.
type MissingToolError struct {
	Configured string   // explicit location that was rejected, if any
	Searched   []string // executable names looked up
}

func (e *MissingToolError) Error() string {
	if e.Configured != "" {
		return fmt.Sprintf("toolchain: %s not found at %s", strings.Join(e.Searched, " or "), e.Configured)
	}
	return fmt.Sprintf("toolchain: %s must be on the PATH or in the working directory", strings.Join(e.Searched, " or "))
}

func (e *MissingToolError) Is(target error) bool { return target == ErrMissingTool }

// Names returns the executable names tried, in order.
func Names() []string {
	if runtime.GOOS == "windows" {
		return []string{"adhoc.exe"}
	}
	return []string{"adhoc.exe", "adhoc"}
}

// Tool is a located toolchain executable.
type Tool struct {
	Path string
	// Dir is the working directory of invocations. Empty means the current one.
	Dir string
}

// Locate finds the executable. A configured path (a file, or a directory holding
// the executable) is authoritative; otherwise PATH is searched, then the working
// directory.
func Locate(configured string) (*Tool, error) {
	names := Names()

	if configured != "" {
		info, err := os.Stat(configured)
		switch {
		case err != nil:
			return nil, &MissingToolError{Configured: configured, Searched: names}
		case !info.IsDir():
			return &Tool{Path: configured}, nil
		}
		for _, name := range names {
			if p := filepath.Join(configured, name); isFile(p) {
				return &Tool{Path: p}, nil
			}
		}
		return nil, &MissingToolError{Configured: configured, Searched: names}
	}

	for _, name := range names {
		if p, err := exec.LookPath(name); err == nil {
			return &Tool{Path: p}, nil
		}
	}

	if wd, err := os.Getwd(); err == nil {
		for _, name := range names {
			if p := filepath.Join(wd, name); isFile(p) {
				return &Tool{Path: p}, nil
			}
		}
	}
	return nil, &MissingToolError{Searched: names}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// run executes the tool once and waits for it. The combined output is attached to
// the error on failure.
func (t *Tool) run(ctx context.Context, args ...string) error {
	slog.Debug("Running toolchain", "path", t.Path, "args", args)

	cmd := exec.CommandContext(ctx, t.Path, args...)
	cmd.Dir = t.Dir
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("running %s %s: %s: %w", filepath.Base(t.Path), strings.Join(args, " "), msg, err)
		}
		return fmt.Errorf("running %s %s: %w", filepath.Base(t.Path), strings.Join(args, " "), err)
	}
	return nil
}

// BuildProject compiles a YAML project file into output.
func (t *Tool) BuildProject(ctx context.Context, yamlPath, output string) error {
	return t.run(ctx, "build", "-i", yamlPath, "-o", output)
}

// BuildScript compiles a single .ad script for the given Adhoc version.
func (t *Tool) BuildScript(ctx context.Context, adPath, output, version string) error {
	return t.run(ctx, "build", "-i", adPath, "-o", output, "-v", version)
}

// BuildInPlace compiles adPath next to itself and returns the .adc path.
func (t *Tool) BuildInPlace(ctx context.Context, adPath string) (string, error) {
	if err := t.run(ctx, "build", "-i", adPath); err != nil {
		return "", err
	}
	return ReplaceExt(adPath, ".ad", ".adc"), nil
}

// Disassemble writes a .ad.diss dump next to adcPath and returns its path.
func (t *Tool) Disassemble(ctx context.Context, adcPath string) (string, error) {
	if err := t.run(ctx, adcPath); err != nil {
		return "", err
	}
	return ReplaceExt(adcPath, ".adc", ".ad.diss"), nil
}

// ReplaceExt swaps a trailing extension. path is returned with newExt appended when
// it does not end in oldExt.
func ReplaceExt(path, oldExt, newExt string) string {
	return strings.TrimSuffix(path, oldExt) + newExt
}
