package cli

import "testing"

func TestSetVersion(t *testing.T) {
	SetVersion("v1.2.0", "abc123", "2026-08-01")
	t.Cleanup(func() { SetVersion("", "", "") })

	if version != "v1.2.0" {
		t.Errorf("version = %q, want v1.2.0", version)
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want abc123", commit)
	}
	if date != "2026-08-01" {
		t.Errorf("date = %q, want 2026-08-01", date)
	}
}
