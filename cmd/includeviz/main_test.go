package main

import (
	"errors"
	"fmt"
	"testing"

	ivzerrors "github.com/matzehuels/includeviz/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid graph", ivzerrors.New(ivzerrors.ErrCodeInvalidGraph, "empty endpoint"), exitInvalid},
		{"invalid options wrapped", fmt.Errorf("layout: %w", ivzerrors.New(ivzerrors.ErrCodeInvalidOptions, "gap")), exitInvalid},
		{"missing file", ivzerrors.New(ivzerrors.ErrCodeFileNotFound, "main.json"), exitNotFound},
		{"missing header", ivzerrors.New(ivzerrors.ErrCodeNotFound, "no header matching %q", "x.h"), exitNotFound},
		{"storage", ivzerrors.New(ivzerrors.ErrCodeStorage, "redis down"), 1},
		{"plain", errors.New("unknown flag: --bogus"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorLine(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ivzerrors.New(ivzerrors.ErrCodeNotFound, "no header matching %q", "x.h"), `Error: no header matching "x.h"`},
		{ivzerrors.Wrap(ivzerrors.ErrCodeStorage, errors.New("dial tcp"), "save layout"), "Error: save layout"},
		{errors.New("unknown flag: --bogus"), "Error: unknown flag: --bogus"},
	}
	for _, tt := range tests {
		if got := errorLine(tt.err); got != tt.want {
			t.Errorf("errorLine(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
