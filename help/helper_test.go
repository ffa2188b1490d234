package help

import "testing"

func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	if got := HomeDir(); got != "/home/alice" {
		t.Fatalf("HomeDir() = %q", got)
	}
}

func TestLookupEnv(t *testing.T) {
	t.Setenv("SNODE_TEST_A", "")
	t.Setenv("SNODE_TEST_B", "token")
	if got := LookupEnv("SNODE_TEST_A", "SNODE_TEST_B"); got != "token" {
		t.Fatalf("LookupEnv = %q", got)
	}
	if got := LookupEnv("SNODE_TEST_A"); got != "" {
		t.Fatalf("LookupEnv = %q, want empty", got)
	}
}
