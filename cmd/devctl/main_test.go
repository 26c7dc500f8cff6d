package main

import (
	"bytes"
	"testing"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := buildRoot()
	want := []string{"start", "stop", "kill", "restart", "status", "logs", "build", "clean"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestRootHelpRuns(t *testing.T) {
	root := buildRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatalf("help: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("devctl")) {
		t.Fatalf("help output missing command name: %s", out.String())
	}
}

func TestLogsFlagDefaults(t *testing.T) {
	root := buildRoot()
	logs, _, err := root.Find([]string{"logs"})
	if err != nil {
		t.Fatalf("find logs: %v", err)
	}
	if got := logs.Flags().Lookup("lines").DefValue; got != "50" {
		t.Fatalf("lines default = %s, want 50", got)
	}
	start, _, err := root.Find([]string{"start"})
	if err != nil {
		t.Fatalf("find start: %v", err)
	}
	if got := start.Flags().Lookup("port").DefValue; got != "8000" {
		t.Fatalf("start port default = %s, want 8000", got)
	}
}
