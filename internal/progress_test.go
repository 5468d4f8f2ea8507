package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgress_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := ShowProgress(ctx, "Testing", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	// Should handle context cancellation gracefully
	_ = err
}

func TestShowProgressWithSteps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		steps   []ProgressStep
		wantErr bool
	}{
		{
			name: "successful steps",
			steps: []ProgressStep{
				{Message: "Step 1", Fn: func() error { return nil }},
				{Message: "Step 2", Fn: func() error { return nil }},
			},
			wantErr: false,
		},
		{
			name: "step with error",
			steps: []ProgressStep{
				{Message: "Step 1", Fn: func() error { return nil }},
				{Message: "Step 2", Fn: func() error { return errors.New("step error") }},
			},
			wantErr: true,
		},
		{
			name:    "empty steps",
			steps:   []ProgressStep{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgressWithSteps(ctx, tt.steps)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgressWithSteps() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressWithSteps_StopsAtFailure(t *testing.T) {
	ran := 0
	steps := []ProgressStep{
		{Message: "Reading export", Fn: func() error { ran++; return errors.New("unreadable") }},
		{Message: "Writing artifacts", Fn: func() error { ran++; return nil }},
	}

	err := ShowProgressWithSteps(context.Background(), steps)
	if err == nil {
		t.Fatal("ShowProgressWithSteps() should return the failing step's error")
	}
	if ran != 1 {
		t.Errorf("steps run = %d, want 1", ran)
	}
	if !strings.Contains(err.Error(), "Reading export") {
		t.Errorf("error should name the failing step, got: %v", err)
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal() should be false for a buffer")
	}
}

func TestShowProgress_LogsMessageVerbatim(t *testing.T) {
	if isTerminal(os.Stderr) {
		t.Skip("spinner is drawn instead of logging on a terminal")
	}
	originalLevel := logLevel
	originalLogger := logger
	defer func() {
		logLevel = originalLevel
		logger = originalLogger
	}()

	var buf bytes.Buffer
	SetLogOutput(&buf, "json")
	SetLogLevel(LogLevelInfo)

	err := ShowProgress(context.Background(), "Reading my%20export.json", func() error { return nil })
	if err != nil {
		t.Fatalf("ShowProgress() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Reading my%20export.json") {
		t.Errorf("log output = %s, want the message unchanged", buf.String())
	}
}
