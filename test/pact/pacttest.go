//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "coffee-api"
	ConsumerName = "coffee-admin"

	StateShopSeeded   = "coffee shop seeded"
	StateShopEmpty    = "coffee shop empty"
	StateOrderMissing = "no order with id 404"
)

// Identifiers of the default seed document.
const (
	SeededProductID int64 = 1
	SeededMemberID  int64 = 1
	SeededOrderID   int64 = 1
	MissingOrderID  int64 = 404
)

const (
	exampleEmail    = "pact.member@example.com"
	exampleName     = "Pact Member"
	examplePassword = "pact-pass"
	examplePhone    = "010-1234-5678"
	exampleAddress  = "1 Pact-ro, Jung-gu, Seoul"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the admin consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleMemberPayload is the body the consumer posts when registering a member.
func ExampleMemberPayload() map[string]any {
	return map[string]any{
		"email":    exampleEmail,
		"password": examplePassword,
		"name":     exampleName,
		"phone":    examplePhone,
		"address":  exampleAddress,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
