package executor

import (
	"context"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		vars map[string]string
		want []string
	}{
		{
			name: "file placeholder",
			args: []string{"cp", "{file}", "/backup/{name}"},
			vars: map[string]string{"file": "/tmp/a.webvtt", "name": "a.webvtt"},
			want: []string{"cp", "/tmp/a.webvtt", "/backup/a.webvtt"},
		},
		{
			name: "unknown placeholder kept",
			args: []string{"echo", "{other}"},
			vars: map[string]string{"file": "x"},
			want: []string{"echo", "{other}"},
		},
		{
			name: "no vars",
			args: []string{"true"},
			want: []string{"true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.args, tt.vars)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecuteInDir(t *testing.T) {
	if _, err := exec.LookPath("pwd"); err != nil {
		t.Skip("pwd not available")
	}
	dir := t.TempDir()
	out, err := New().ExecuteInDir(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("ExecuteInDir() = %v, want %v", got, want)
	}
}

func TestExecuteFailure(t *testing.T) {
	_, err := New().Execute(context.Background(), "vttloc-no-such-command")
	if err == nil {
		t.Fatal("Execute() expected error for missing command")
	}
	if !strings.Contains(err.Error(), "vttloc-no-such-command") {
		t.Errorf("Execute() error = %v, want command name in message", err)
	}
}
