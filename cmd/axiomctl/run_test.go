package main

import (
	"context"
	"testing"
)

func TestRun_version(t *testing.T) {
	if code := Run(context.Background(), []string{"--version"}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRun_unknownCommand(t *testing.T) {
	if code := Run(context.Background(), []string{"no-such-command"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
