package toolchain

import (
	"context"
	"errors"
	"fmt"

	"adhoctool/internal/config"
)

var (
	ErrIncompleteEntry = errors.New("quick build entry is incomplete")
	ErrUnknownMode     = errors.New("unknown build mode")
)

// Version is an Adhoc bytecode version accepted by "build -v".
type Version struct {
	Number string
	Games  string
}

// Versions lists the versions the compiler can target, oldest first.
var Versions = []Version{
	{Number: "5", Games: "GT4P / Retail GT4"},
	{Number: "7", Games: "GT4O / TT"},
	{Number: "10", Games: "GTHD / GT5P"},
	{Number: "12", Games: "GTPSP, GT5, GT6, GT Sport"},
}

// KnownVersion reports whether v is listed in Versions.
func KnownVersion(v string) bool {
	for _, known := range Versions {
		if known.Number == v {
			return true
		}
	}
	return false
}

// Validate checks that q has the inputs its mode needs.
func Validate(q config.QuickBuild) error {
	switch q.Mode {
	case config.ModeYAML:
		if q.YAMLInput == "" || q.OutputADC == "" {
			return fmt.Errorf("%q: YAML input or output path is missing: %w", q.Label, ErrIncompleteEntry)
		}
	case config.ModeSingle:
		if q.ADInput == "" || q.OutputADC == "" || q.Version == "" {
			return fmt.Errorf("%q: single builds need an .ad input, an output path and a version: %w", q.Label, ErrIncompleteEntry)
		}
	default:
		return fmt.Errorf("%q: %w %q", q.Label, ErrUnknownMode, q.Mode)
	}
	return nil
}

// RunQuickBuild builds one entry and, when autoDisassemble is set, disassembles
// the result. It returns the dump path, or "" when no dump was requested.
func (t *Tool) RunQuickBuild(ctx context.Context, q config.QuickBuild, autoDisassemble bool) (string, error) {
	if err := Validate(q); err != nil {
		return "", err
	}

	var err error
	if q.Mode == config.ModeYAML {
		err = t.BuildProject(ctx, q.YAMLInput, q.OutputADC)
	} else {
		err = t.BuildScript(ctx, q.ADInput, q.OutputADC, q.Version)
	}
	if err != nil {
		return "", fmt.Errorf("building %q: %w", q.Label, err)
	}

	if !autoDisassemble {
		return "", nil
	}
	diss, err := t.Disassemble(ctx, q.OutputADC)
	if err != nil {
		return "", fmt.Errorf("disassembling %q: %w", q.Label, err)
	}
	return diss, nil
}
