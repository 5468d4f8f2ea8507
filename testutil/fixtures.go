package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MappingExport is a single-document export with one mapping-form conversation
// holding one user question at 1700000000.
const MappingExport = `{"conversations":[{"title":"T","mapping":{"1":{"message":{"author":{"role":"user"},"content":{"parts":["Hello world"]},"create_time":1700000000}}}}]}`

// NDJSONExport holds two flat-form conversations on two different UTC days.
const NDJSONExport = `{"title":"First","messages":[{"role":"user","content":"How do goroutines schedule work?","create_time":1700000000}]}
{"title":"Second","messages":[{"role":"assistant","content":"ignored reply","create_time":1700100000},{"role":"user","content":"What is a channel deadlock?","create_time":1700100000}]}
`

// MixedExport exercises both conversation forms, millisecond timestamps and
// messages that must be filtered out.
const MixedExport = `{"conversations":[
  {"title":"Mapping","mapping":{
    "a":{"message":{"author":{"role":"system"},"content":{"parts":["setup"]},"create_time":1700000000}},
    "b":{"message":{"author":{"role":"user"},"content":{"parts":["Explain kubernetes pods","please"]},"create_time":1700000100}},
    "c":{"message":{"author":{"role":"assistant"},"content":{"parts":["Pods are groups"]},"create_time":1700000200}},
    "d":{"message":null},
    "e":{"message":{"author":{"role":"user"},"content":{"parts":["   "]},"create_time":1700000300}}
  }},
  {"name":"Flat","messages":[
    {"role":"user","text":"kubernetes deployment rollback steps","create_time":1700000050000},
    {"role":"user","content":"no timestamp here"}
  ]}
]}`

// WriteExportFixture writes data to name inside dir and returns the full path
func WriteExportFixture(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}
