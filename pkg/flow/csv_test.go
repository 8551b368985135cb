package flow

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Alrudin/fromto/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []Flow
		wantWarns int
		wantCode  errors.Code
	}{
		{
			name:  "Simple",
			input: "from,to\na,b\nb,c\n",
			want:  []Flow{{From: "a", To: "b"}, {From: "b", To: "c"}},
		},
		{
			name:  "HeaderCaseInsensitive",
			input: "From,TO\na,b\n",
			want:  []Flow{{From: "a", To: "b"}},
		},
		{
			name:  "ColumnsReordered",
			input: "to,from\nb,a\n",
			want:  []Flow{{From: "a", To: "b"}},
		},
		{
			name:  "ExtraColumnsIgnored",
			input: "comment,from,to\nfwd,a,b\n",
			want:  []Flow{{From: "a", To: "b"}},
		},
		{
			name:      "ShortRowSkipped",
			input:     "from,to\na\nb,c\n",
			want:      []Flow{{From: "b", To: "c"}},
			wantWarns: 1,
		},
		{
			name:      "EmptyFieldSkipped",
			input:     "from,to\na,\n,b\nc,d\n",
			want:      []Flow{{From: "c", To: "d"}},
			wantWarns: 2,
		},
		{
			name:  "Empty",
			input: "",
			want:  nil,
		},
		{
			name:  "HeaderOnly",
			input: "from,to\n",
			want:  nil,
		},
		{
			name:     "MissingColumns",
			input:    "source,dest\na,b\n",
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warns int
			opts := ReadOptions{Logger: func(string, ...any) { warns++ }}

			got, err := ReadCSV(strings.NewReader(tt.input), opts)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("flows = %v, want %v", got, tt.want)
			}
			if warns != tt.wantWarns {
				t.Errorf("warnings = %d, want %d", warns, tt.wantWarns)
			}
		})
	}
}

func TestReadCSVNilLogger(t *testing.T) {
	// Skipped rows must not panic when no logger is configured.
	got, err := ReadCSV(strings.NewReader("from,to\na\nb,c\n"), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("flows = %v, want one row", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "flows.csv")
	if err := os.WriteFile(csvPath, []byte("from,to\na,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "flows.json")
	if err := os.WriteFile(jsonPath, []byte(`{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	want := []Flow{{From: "a", To: "b"}}

	for _, path := range []string{csvPath, jsonPath} {
		got, err := ReadFile(path, ReadOptions{})
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ReadFile(%s) = %v, want %v", path, got, want)
		}
	}

	_, err := ReadFile(filepath.Join(dir, "missing.csv"), ReadOptions{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
}
