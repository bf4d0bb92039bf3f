package storage

import (
	"testing"
	"time"
)

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if role, ok := ParseRole(" Manager "); !ok || role != RoleManager {
		t.Fatalf("ParseRole = %q, %v", role, ok)
	}
	if _, ok := ParseRole("owner"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
	if status, ok := ParseUserStatus("SUSPENDED"); !ok || status != UserSuspended {
		t.Fatalf("ParseUserStatus = %q, %v", status, ok)
	}
	if plan, ok := ParsePlan("enterprise"); !ok || plan != PlanEnterprise {
		t.Fatalf("ParsePlan = %q, %v", plan, ok)
	}
	if _, ok := ParseOrganizationStatus(""); ok {
		t.Fatal("expected blank status to be rejected")
	}
}

func TestPasswordResetUsable(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reset := PasswordReset{ExpiresAt: now.Add(time.Hour)}
	if !reset.Usable(now) {
		t.Fatal("expected fresh reset to be usable")
	}
	if reset.Usable(now.Add(2 * time.Hour)) {
		t.Fatal("expected expired reset to be unusable")
	}
	reset.UsedAt = now
	if reset.Usable(now) {
		t.Fatal("expected used reset to be unusable")
	}
}
