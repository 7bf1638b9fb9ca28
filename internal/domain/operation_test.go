package domain

import (
	"errors"
	"testing"
)

func TestParseMenuChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    Operation
		wantErr bool
	}{
		{"1", OperationInquire, false},
		{"2", OperationCredit, false},
		{"3", OperationDebit, false},
		{" 4 \n", OperationExit, false},
		{"0", 0, true},
		{"5", 0, true},
		{"-1", 0, true},
		{"two", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMenuChoice(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidChoice) {
				t.Errorf("ParseMenuChoice(%q): expected ErrInvalidChoice, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMenuChoice(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMenuChoice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOperation_Mutates(t *testing.T) {
	if OperationInquire.Mutates() || OperationExit.Mutates() {
		t.Error("inquire and exit must not mutate")
	}
	if !OperationCredit.Mutates() || !OperationDebit.Mutates() {
		t.Error("credit and debit must mutate")
	}
	if Operation(99).String() != "unknown" {
		t.Errorf("expected unknown, got %s", Operation(99).String())
	}
}
