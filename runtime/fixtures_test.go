package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// fixtureCase is one program from runtime/testdata. Output lists the printed
// lines; Static and Runtime, when set, are substrings the reported error
// must contain.
type fixtureCase struct {
	Name    string   `yaml:"name"`
	Source  string   `yaml:"source"`
	Output  []string `yaml:"output"`
	Static  string   `yaml:"static"`
	Runtime string   `yaml:"runtime"`
}

func loadFixtures(t *testing.T, path string) []fixtureCase {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	var cases []fixtureCase
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cases); err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return cases
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	for _, path := range paths {
		for _, tc := range loadFixtures(t, path) {
			t.Run(strings.TrimSuffix(filepath.Base(path), ".yaml")+"/"+tc.Name, func(t *testing.T) {
				in, out := newTestInterpreter()
				err := EvaluateString(in, tc.Source)

				switch {
				case tc.Static != "":
					if !IsStatic(err) {
						t.Fatalf("expected static error, got %v", err)
					}
					if !strings.Contains(err.Error(), tc.Static) {
						t.Fatalf("expected error containing %q, got %q", tc.Static, err.Error())
					}
				case tc.Runtime != "":
					if !IsRuntime(err) {
						t.Fatalf("expected runtime error, got %v", err)
					}
					if !strings.Contains(err.Error(), tc.Runtime) {
						t.Fatalf("expected error containing %q, got %q", tc.Runtime, err.Error())
					}
				case err != nil:
					t.Fatalf("unexpected error: %v", err)
				}

				want := ""
				if len(tc.Output) > 0 {
					want = strings.Join(tc.Output, "\n") + "\n"
				}
				if out.String() != want {
					t.Fatalf("expected output %q, got %q", want, out.String())
				}
			})
		}
	}
}
