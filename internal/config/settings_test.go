package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestFromStoreQuickBuilds(t *testing.T) {
	content := strings.Join([]string{
		`ADHOC_DIR = "D:\adhoc\adhoc.exe"`,
		`DEFAULT_TAB = Quick`,
		`AUTO_DISS_ON_QUICKBUILD = TRUE`,
		`QUICK_BUILD_LIST_0 = ["arcade", "SINGLE", "arcade.ad", "12", "", "arcade.adc"]`,
		`QUICK_BUILD_LIST_1 = ["short", "YAML"]`,
		`QUICK_BUILD_LIST_2 = ["project", "YAML", "", "", "gt5.yaml", "out.adc"]`,
		`QUICK_BUILD_LIST_4 = ["unreachable", "YAML", "", "", "x.yaml", "x.adc"]`,
	}, "\n")

	s, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	st := FromStore(s)

	if st.AdhocPath != `D:\adhoc\adhoc.exe` {
		t.Errorf("AdhocPath = %q", st.AdhocPath)
	}
	if st.DefaultTab != "quick" {
		t.Errorf("DefaultTab = %q", st.DefaultTab)
	}
	if !st.AutoDisassemble {
		t.Error("AutoDisassemble should be true")
	}
	if len(st.QuickBuilds) != 2 {
		t.Fatalf("expected 2 quick builds, got %d: %+v", len(st.QuickBuilds), st.QuickBuilds)
	}
	want := QuickBuild{Label: "arcade", Mode: ModeSingle, ADInput: "arcade.ad", Version: "12", OutputADC: "arcade.adc"}
	if st.QuickBuilds[0] != want {
		t.Errorf("QuickBuilds[0] = %+v, want %+v", st.QuickBuilds[0], want)
	}
	if st.QuickBuilds[1].Label != "project" || st.QuickBuilds[1].YAMLInput != "gt5.yaml" {
		t.Errorf("QuickBuilds[1] = %+v", st.QuickBuilds[1])
	}
	if len(st.Diags()) != 1 {
		t.Errorf("expected one skipped-entry diagnostic, got %v", st.Diags())
	}
}

func TestSaveQuickBuildsRenumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	writeFile(t, path, strings.Join([]string{
		"// keep",
		`ADHOC_DIR = "adhoc.exe"`,
		`QUICK_BUILD_LIST_0 = ["a", "YAML", "", "", "a.yaml", "a.adc"]`,
		`QUICK_BUILD_LIST_1 = ["b", "YAML", "", "", "b.yaml", "b.adc"]`,
		`AUTO_DISS_ON_QUICKBUILD = false`,
	}, "\n")+"\n")

	st, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveQuickBuild(0); err != nil {
		t.Fatal(err)
	}
	st.AddQuickBuild(QuickBuild{Label: `c "quoted"`, Mode: ModeSingle, ADInput: `C:\c.ad`, Version: "10", OutputADC: "c.adc"})
	st.AutoDisassemble = true
	if err := st.SaveQuickBuilds(path); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"// keep",
		`ADHOC_DIR = "adhoc.exe"`,
		`QUICK_BUILD_LIST_0 = ["b", "YAML", "", "", "b.yaml", "b.adc"]`,
		`QUICK_BUILD_LIST_1 = ["c \"quoted\"", "SINGLE", "C:\\c.ad", "10", "", "c.adc"]`,
		`AUTO_DISS_ON_QUICKBUILD = true`,
		"",
	}, "\n")
	if got := readFile(t, path); got != want {
		t.Errorf("saved file:\n%s\nwant:\n%s", got, want)
	}

	reloaded, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.QuickBuilds) != 2 || reloaded.QuickBuilds[1].Label != `c "quoted"` || reloaded.QuickBuilds[1].ADInput != `C:\c.ad` {
		t.Errorf("reloaded quick builds = %+v", reloaded.QuickBuilds)
	}
}

func TestSaveGeneral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	writeFile(t, path, "DEFAULT_TAB = yaml\nQUICK_BUILD_LIST_0 = [\"a\", \"YAML\", \"\", \"\", \"a.yaml\", \"a.adc\"]\n")

	st, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	st.AdhocPath = "/opt/adhoc/adhoc.exe"
	if err := st.SetDefaultTab("DISS"); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveGeneral(path); err != nil {
		t.Fatal(err)
	}

	want := "QUICK_BUILD_LIST_0 = [\"a\", \"YAML\", \"\", \"\", \"a.yaml\", \"a.adc\"]\n" +
		"ADHOC_DIR = \"/opt/adhoc/adhoc.exe\"\n" +
		"DEFAULT_TAB = \"diss\"\n"
	if got := readFile(t, path); got != want {
		t.Errorf("saved file:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetDefaultTabRejectsUnknown(t *testing.T) {
	st := &Settings{DefaultTab: "quick"}
	if err := st.SetDefaultTab("graphics"); err == nil {
		t.Fatal("expected an error for an unknown tab")
	}
	if st.DefaultTab != "quick" {
		t.Errorf("DefaultTab changed to %q", st.DefaultTab)
	}
}

func TestMoveQuickBuild(t *testing.T) {
	st := &Settings{QuickBuilds: []QuickBuild{{Label: "a"}, {Label: "b"}, {Label: "c"}}}

	tests := []struct {
		name      string
		index     int
		direction int
		wantIndex int
		wantOrder string
		wantErr   bool
	}{
		{name: "down", index: 0, direction: 1, wantIndex: 1, wantOrder: "b,a,c"},
		{name: "up", index: 2, direction: -1, wantIndex: 1, wantOrder: "b,c,a"},
		{name: "top cannot move up", index: 0, direction: -1, wantIndex: 0, wantOrder: "b,c,a", wantErr: true},
		{name: "bottom cannot move down", index: 2, direction: 1, wantIndex: 2, wantOrder: "b,c,a", wantErr: true},
		{name: "out of range", index: 5, direction: 1, wantIndex: 5, wantOrder: "b,c,a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.MoveQuickBuild(tt.index, tt.direction)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MoveQuickBuild err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.wantIndex {
				t.Errorf("index = %d, want %d", got, tt.wantIndex)
			}
			var labels []string
			for _, q := range st.QuickBuilds {
				labels = append(labels, q.Label)
			}
			if order := strings.Join(labels, ","); order != tt.wantOrder {
				t.Errorf("order = %s, want %s", order, tt.wantOrder)
			}
		})
	}
}

func TestFindQuickBuild(t *testing.T) {
	st := &Settings{QuickBuilds: []QuickBuild{{Label: "arcade"}, {Label: "7"}}}

	if i, err := st.FindQuickBuild("1"); err != nil || i != 1 {
		t.Errorf("FindQuickBuild(1) = %d, %v", i, err)
	}
	if i, err := st.FindQuickBuild("arcade"); err != nil || i != 0 {
		t.Errorf("FindQuickBuild(arcade) = %d, %v", i, err)
	}
	if _, err := st.FindQuickBuild("7"); err == nil {
		t.Error("numeric references are indexes, 7 is out of range")
	}
	if _, err := st.FindQuickBuild("missing"); err == nil {
		t.Error("expected an error for an unknown label")
	}
}
