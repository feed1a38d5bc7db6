package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullDocument = `
match:
  name: can0
can:
  bitrate: 500K
  sample-point: 87.5%
  data-bitrate: 2M
  data-sample-point: 75%
  fd-mode: true
  non-iso: false
  triple-sampling: true
  bus-error-reporting: false
  listen-only: false
  termination: true
  restart: 100ms
`

func TestParseFullDocument(t *testing.T) {
	f, err := Parse([]byte(fullDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.Match.Name != "can0" {
		t.Errorf("match.name: got %q, want can0", f.Match.Name)
	}

	raw := []struct {
		key  string
		got  Value
		want string
	}{
		{"bitrate", f.CAN.Bitrate, "500K"},
		{"sample-point", f.CAN.SamplePoint, "87.5%"},
		{"data-bitrate", f.CAN.DataBitrate, "2M"},
		{"data-sample-point", f.CAN.DataSamplePoint, "75%"},
		{"fd-mode", f.CAN.FDMode, "true"},
		{"non-iso", f.CAN.NonISO, "false"},
		{"triple-sampling", f.CAN.TripleSampling, "true"},
		{"bus-error-reporting", f.CAN.BusErrorReporting, "false"},
		{"listen-only", f.CAN.ListenOnly, "false"},
		{"termination", f.CAN.Termination, "true"},
		{"restart", f.CAN.Restart, "100ms"},
	}
	for _, tt := range raw {
		if string(tt.got) != tt.want {
			t.Errorf("%s: got %q, want %q", tt.key, tt.got, tt.want)
		}
	}
}

func TestParsePlainNumbersStayVerbatim(t *testing.T) {
	f, err := Parse([]byte("match:\n  name: can0\ncan:\n  bitrate: 125000\n  sample-point: 875\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.CAN.Bitrate != "125000" || f.CAN.SamplePoint != "875" {
		t.Errorf("raw values: got %q/%q, want 125000/875", f.CAN.Bitrate, f.CAN.SamplePoint)
	}
}

func TestParseNullValueMeansUnset(t *testing.T) {
	f, err := Parse([]byte("match:\n  name: can0\ncan:\n  restart:\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.CAN.Restart != "" {
		t.Errorf("restart: got %q, want empty", f.CAN.Restart)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("match:\n  name: can0\ncan:\n  bitrates: 500K\n"))
	if err == nil {
		t.Fatal("Parse accepted an unknown key")
	}
}

func TestParseRejectsNonScalarValue(t *testing.T) {
	_, err := Parse([]byte("match:\n  name: can0\ncan:\n  bitrate: [500K]\n"))
	if err == nil {
		t.Fatal("Parse accepted a sequence value")
	}
}

func TestParseRequiresMatchName(t *testing.T) {
	_, err := Parse([]byte("can:\n  bitrate: 500K\n"))
	if err == nil || !strings.Contains(err.Error(), "match.name") {
		t.Fatalf("Parse error: got %v, want missing match.name", err)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "# nothing here\n"} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) accepted an empty document", doc)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"can0", "can0", true},
		{"can0", "can1", false},
		{"can*", "can0", true},
		{"can*", "can12", true},
		{"can*", "vcan0", false},
		{"can[0-3]", "can2", true},
		{"can[0-3]", "can4", false},
		{"can[", "can0", false}, // invalid pattern matches nothing
	}

	for _, tt := range tests {
		f := &File{Match: Match{Name: tt.pattern}}
		if got := f.Matches(tt.name); got != tt.want {
			t.Errorf("Matches(%q, %q): got %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	write := func(name, doc string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			t.Fatalf("writing %s failed: %v", name, err)
		}
	}
	write("b.yaml", "match:\n  name: can1\n")
	write("a.yml", "match:\n  name: can0\n")
	write("notes.txt", "not a configuration\n")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("creating subdirectory failed: %v", err)
	}

	files, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Match.Name != "can0" || files[1].Match.Name != "can1" {
		t.Errorf("order: got %s, %s, want can0, can1", files[0].Match.Name, files[1].Match.Name)
	}
	for _, f := range files {
		if f.Path == "" {
			t.Errorf("file %s has no path recorded", f.Match.Name)
		}
	}
}

func TestLoadDirPropagatesFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("match:\n  name: can0\ncan:\n  bogus: 1\n"), 0o644); err != nil {
		t.Fatalf("writing file failed: %v", err)
	}

	_, err := LoadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("LoadDir error: got %v, want one naming bad.yaml", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}
