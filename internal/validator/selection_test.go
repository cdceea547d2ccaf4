package validator

import (
	"errors"
	"strings"
	"testing"

	"regionview/internal/region"
	"regionview/pkg/logger"
)

func TestSelectionValidator_Validate(t *testing.T) {
	v := NewSelectionValidator(logger.Discard())

	tests := []struct {
		name       string
		req        SelectionRequest
		wantFields []string
	}{
		{
			name: "valid selection",
			req:  SelectionRequest{Region: "eastern", Time: "night"},
		},
		{
			name: "case and whitespace are tolerated",
			req:  SelectionRequest{Region: " Northern ", Time: "DAY"},
		},
		{
			name:       "missing both",
			req:        SelectionRequest{},
			wantFields: []string{"region", "time"},
		},
		{
			name:       "unknown region",
			req:        SelectionRequest{Region: "central", Time: "day"},
			wantFields: []string{"region"},
		},
		{
			name:       "unknown time",
			req:        SelectionRequest{Region: "western", Time: "dusk"},
			wantFields: []string{"time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			details := verrs.Details()
			for _, field := range tt.wantFields {
				if _, ok := details[field]; !ok {
					t.Errorf("expected error for field %q, got %v", field, details)
				}
			}
			if len(verrs) != len(tt.wantFields) {
				t.Errorf("expected %d errors, got %d: %v", len(tt.wantFields), len(verrs), verrs)
			}
		})
	}
}

func TestSelectionValidator_Messages(t *testing.T) {
	v := NewSelectionValidator(logger.Discard())

	err := v.Validate(&SelectionRequest{Region: "central", Time: "dusk"})
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "region must be one of northern, southern, eastern, western") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "time must be one of day, night") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestSelectionRequest_Combination(t *testing.T) {
	got := SelectionRequest{Region: " Southern", Time: "Night "}.Combination()
	want := region.Combination{Region: region.Southern, Period: region.Night}
	if got != want {
		t.Errorf("Combination() = %+v, want %+v", got, want)
	}
}
