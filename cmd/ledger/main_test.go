package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func useFileStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "account_data.json")
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STORE_FILE", path)
	t.Setenv("HTTP_ADDR", "")
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBalanceCmdDefault(t *testing.T) {
	useFileStore(t)

	out, _, err := execute(t, "", "balance")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if strings.TrimSpace(out) != "Current balance: 1000.00" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCreditDebitPersistAcrossRuns(t *testing.T) {
	useFileStore(t)

	out, _, err := execute(t, "", "credit", "250.75")
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if strings.TrimSpace(out) != "Amount credited. New balance: 1250.75" {
		t.Fatalf("unexpected credit output %q", out)
	}

	out, _, err = execute(t, "", "debit", "300.50")
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if strings.TrimSpace(out) != "Amount debited. New balance: 950.25" {
		t.Fatalf("unexpected debit output %q", out)
	}

	out, _, err = execute(t, "", "balance")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if strings.TrimSpace(out) != "Current balance: 950.25" {
		t.Fatalf("unexpected balance output %q", out)
	}
}

func TestDebitInsufficientFunds(t *testing.T) {
	useFileStore(t)

	out, errOut, err := execute(t, "", "debit", "999999.99")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	if !strings.Contains(errOut, "Insufficient funds for this debit.") {
		t.Fatalf("expected insufficient funds message, got %q", errOut)
	}

	out, _, err = execute(t, "", "balance")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if strings.TrimSpace(out) != "Current balance: 1000.00" {
		t.Fatalf("balance changed after failed debit: %q", out)
	}
}

func TestAmountCmdRejectsInvalidInput(t *testing.T) {
	useFileStore(t)

	tests := []struct {
		amount string
		want   string
	}{
		{"abc", "Invalid amount format. Please enter a valid number."},
		{"-0.01", "Amount cannot be negative. Please try again."},
		{"1000000.00", "Amount exceeds maximum limit (999999.99). Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			_, errOut, err := execute(t, "", "credit", "--", tt.amount)
			if !errors.Is(err, errReported) {
				t.Fatalf("expected reported error, got %v", err)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, errOut)
			}
		})
	}
}

func TestRootCmdRunsShell(t *testing.T) {
	useFileStore(t)

	out, _, err := execute(t, "2\n0.005\n1\n4\n")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}

	for _, want := range []string{
		"Account Management System",
		"Amount credited. New balance: 1000.01",
		"Current balance: 1000.01",
		"Exiting the program. Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestUnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, _, err := execute(t, "", "balance")
	if err == nil || !strings.Contains(err.Error(), "unknown STORE_DRIVER") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestUnreachableRedisFallsBackToMemory(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1")
	t.Setenv("HTTP_ADDR", "")

	out, errOut, err := execute(t, "", "credit", "10")
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if strings.TrimSpace(out) != "Amount credited. New balance: 1010.00" {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(errOut, "balance store unavailable") {
		t.Fatalf("expected fallback warning, got %q", errOut)
	}
}
