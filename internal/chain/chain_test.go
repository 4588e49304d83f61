package chain

import (
	"reflect"
	"testing"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		name     string
		cameFrom map[string]string
		current  string
		wantPath []string
		wantRoot string
		wantOK   bool
	}{
		{
			name:     "linear chain",
			cameFrom: map[string]string{"b": "a", "c": "b", "d": "c"},
			current:  "d",
			wantPath: []string{"a", "b", "c", "d"},
			wantRoot: "a",
			wantOK:   true,
		},
		{
			name:     "start from the middle",
			cameFrom: map[string]string{"b": "a", "c": "b", "d": "c"},
			current:  "b",
			wantPath: []string{"a", "b"},
			wantRoot: "a",
			wantOK:   true,
		},
		{
			name:     "no predecessor",
			cameFrom: map[string]string{},
			current:  "x",
			wantPath: []string{"x"},
			wantRoot: "x",
			wantOK:   true,
		},
		{
			name:     "cycle",
			cameFrom: map[string]string{"a": "b", "b": "c", "c": "a"},
			current:  "a",
			wantOK:   false,
		},
		{
			name:     "self loop",
			cameFrom: map[string]string{"a": "a"},
			current:  "a",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, root, ok := Walk(tt.cameFrom, tt.current)
			if ok != tt.wantOK {
				t.Fatalf("ok = %t, want %t", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(path, tt.wantPath) {
				t.Errorf("path = %v, want %v", path, tt.wantPath)
			}
			if root != tt.wantRoot {
				t.Errorf("root = %q, want %q", root, tt.wantRoot)
			}
		})
	}
}
