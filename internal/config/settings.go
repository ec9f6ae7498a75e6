package config

import (
	"fmt"
	"strconv"
	"strings"

	"adhoctool/internal/diag"
)

// Keys managed by the front-end.
const (
	KeyAdhocDir        = "ADHOC_DIR"
	KeyDefaultTab      = "DEFAULT_TAB"
	KeyAutoDisassemble = "AUTO_DISS_ON_QUICKBUILD"
	QuickBuildPrefix   = "QUICK_BUILD_LIST_"

	// DefaultFile is the configuration file used when none is given.
	DefaultFile = "config.txt"
)

// Tabs accepted for DEFAULT_TAB, in display order.
var Tabs = []string{"yaml", "single", "diss", "quick", "setting"}

// BuildMode selects how a quick-build entry invokes the compiler.
type BuildMode string

const (
	ModeYAML   BuildMode = "YAML"
	ModeSingle BuildMode = "SINGLE"
)

// quickBuildArity is the number of fields in a QUICK_BUILD_LIST_<i> tuple.
const quickBuildArity = 6

// QuickBuild is one persisted set of build parameters.
type QuickBuild struct {
	Label     string    `json:"label" jsonschema:"title=Label,description=Name shown for the entry"`
	Mode      BuildMode `json:"mode" jsonschema:"title=Mode,enum=YAML,enum=SINGLE"`
	ADInput   string    `json:"adInput" jsonschema:"title=Script Input,description=.ad source for SINGLE builds"`
	Version   string    `json:"version" jsonschema:"title=Version,description=Adhoc version for SINGLE builds"`
	YAMLInput string    `json:"yamlInput" jsonschema:"title=Project Input,description=.yaml project for YAML builds"`
	OutputADC string    `json:"outputAdc" jsonschema:"title=Output,description=.adc file to produce"`
}

// Tuple returns the on-disk field order.
func (q QuickBuild) Tuple() []string {
	return []string{q.Label, string(q.Mode), q.ADInput, q.Version, q.YAMLInput, q.OutputADC}
}

// QuickBuildFromTuple decodes a stored tuple. ok is false when the arity is wrong.
func QuickBuildFromTuple(t []string) (QuickBuild, bool) {
	if len(t) != quickBuildArity {
		return QuickBuild{}, false
	}
	return QuickBuild{
		Label:     t[0],
		Mode:      BuildMode(t[1]),
		ADInput:   t[2],
		Version:   t[3],
		YAMLInput: t[4],
		OutputADC: t[5],
	}, true
}

// Settings is the typed view of the configuration file.
type Settings struct {
	AdhocPath       string       `json:"adhocDir" jsonschema:"title=Adhoc Executable,description=Path to adhoc.exe"`
	DefaultTab      string       `json:"defaultTab" jsonschema:"title=Default Tab,enum=yaml,enum=single,enum=diss,enum=quick,enum=setting"`
	AutoDisassemble bool         `json:"autoDisassemble" jsonschema:"title=Auto Disassemble,description=Disassemble the output after each quick build"`
	QuickBuilds     []QuickBuild `json:"quickBuilds" jsonschema:"title=Quick Builds"`

	diags diag.Diags
}

// FromStore extracts settings from a parsed store. Quick-build entries are read from
// index 0 upwards until an index is missing; entries with the wrong shape are skipped.
func FromStore(s *Store) *Settings {
	st := &Settings{
		AdhocPath:       s.String(KeyAdhocDir, ""),
		DefaultTab:      strings.ToLower(s.String(KeyDefaultTab, "quick")),
		AutoDisassemble: s.Bool(KeyAutoDisassemble, false),
	}
	st.diags.Append(s.Diags()...)

	for i := 0; ; i++ {
		key := QuickBuildPrefix + strconv.Itoa(i)
		v, ok := s.Get(key)
		if !ok {
			break
		}
		items, isArray := v.AsArray()
		if !isArray {
			st.diags.Addf(diag.SkippedEntry, diag.Warning, "%s is a %s, expected an array", key, v.Kind())
			continue
		}
		q, ok := QuickBuildFromTuple(items)
		if !ok {
			st.diags.Addf(diag.SkippedEntry, diag.Warning, "%s has %d fields, expected %d", key, len(items), quickBuildArity)
			continue
		}
		st.QuickBuilds = append(st.QuickBuilds, q)
	}
	return st
}

// LoadSettings loads and decodes the configuration file at path.
func LoadSettings(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return FromStore(s), nil
}

// Diags returns problems found while decoding the settings.
func (st *Settings) Diags() []diag.Diag { return st.diags.Items() }

// SaveGeneral rewrites ADHOC_DIR and DEFAULT_TAB.
func (st *Settings) SaveGeneral(path string) error {
	updates := []Entry{
		{Key: KeyAdhocDir, Value: StringValue(st.AdhocPath)},
		{Key: KeyDefaultTab, Value: StringValue(st.DefaultTab)},
	}
	return Save(path, updates, []string{KeyAdhocDir, KeyDefaultTab})
}

// SaveQuickBuilds rewrites every QUICK_BUILD_LIST_<i> line and AUTO_DISS_ON_QUICKBUILD.
// Entries are renumbered from zero.
func (st *Settings) SaveQuickBuilds(path string) error {
	updates := make([]Entry, 0, len(st.QuickBuilds)+1)
	for i, q := range st.QuickBuilds {
		updates = append(updates, Entry{
			Key:   QuickBuildPrefix + strconv.Itoa(i),
			Value: ArrayValue(q.Tuple()...),
		})
	}
	updates = append(updates, Entry{Key: KeyAutoDisassemble, Value: BoolValue(st.AutoDisassemble)})
	return Save(path, updates, []string{QuickBuildPrefix, KeyAutoDisassemble})
}

// SetDefaultTab validates and stores the default tab key.
func (st *Settings) SetDefaultTab(tab string) error {
	tab = strings.ToLower(strings.TrimSpace(tab))
	for _, t := range Tabs {
		if t == tab {
			st.DefaultTab = tab
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q, valid tabs: %s", tab, strings.Join(Tabs, ", "))
}

// AddQuickBuild appends q and returns its index.
func (st *Settings) AddQuickBuild(q QuickBuild) int {
	st.QuickBuilds = append(st.QuickBuilds, q)
	return len(st.QuickBuilds) - 1
}

// RemoveQuickBuild deletes the entry at index.
func (st *Settings) RemoveQuickBuild(index int) error {
	if err := st.checkIndex(index); err != nil {
		return err
	}
	st.QuickBuilds = append(st.QuickBuilds[:index], st.QuickBuilds[index+1:]...)
	return nil
}

// MoveQuickBuild swaps the entry at index with its neighbour in direction (-1 up,
// +1 down). It returns the new index.
func (st *Settings) MoveQuickBuild(index, direction int) (int, error) {
	if err := st.checkIndex(index); err != nil {
		return index, err
	}
	if direction != -1 && direction != 1 {
		return index, fmt.Errorf("invalid move direction %d", direction)
	}
	target := index + direction
	if target < 0 || target >= len(st.QuickBuilds) {
		return index, fmt.Errorf("cannot move entry %d %s", index, directionName(direction))
	}
	st.QuickBuilds[index], st.QuickBuilds[target] = st.QuickBuilds[target], st.QuickBuilds[index]
	return target, nil
}

// FindQuickBuild resolves ref as an index or, failing that, as a label.
func (st *Settings) FindQuickBuild(ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if err := st.checkIndex(i); err != nil {
			return 0, err
		}
		return i, nil
	}
	for i, q := range st.QuickBuilds {
		if q.Label == ref {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no quick build named %q", ref)
}

func (st *Settings) checkIndex(index int) error {
	if index < 0 || index >= len(st.QuickBuilds) {
		return fmt.Errorf("quick build index %d out of range (have %d)", index, len(st.QuickBuilds))
	}
	return nil
}

func directionName(d int) string {
	if d < 0 {
		return "up"
	}
	return "down"
}
