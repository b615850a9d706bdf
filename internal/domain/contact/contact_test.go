package contact

import (
	"testing"
	"time"
)

func TestApplyReply(t *testing.T) {
	first := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	t.Run("first reply stamps replied_at", func(t *testing.T) {
		q := &Query{}
		if !q.ApplyReply("please visit the clinic", first) {
			t.Fatal("expected first reply to stamp")
		}
		if q.RepliedAt == nil || !q.RepliedAt.Equal(first) {
			t.Fatalf("RepliedAt = %v, want %v", q.RepliedAt, first)
		}
		if q.AdminReply != "please visit the clinic" {
			t.Errorf("AdminReply = %q", q.AdminReply)
		}
	})

	t.Run("editing a reply keeps the original stamp", func(t *testing.T) {
		q := &Query{}
		q.ApplyReply("first answer", first)
		if q.ApplyReply("revised answer", later) {
			t.Error("edit should not stamp again")
		}
		if !q.RepliedAt.Equal(first) {
			t.Errorf("RepliedAt = %v, want original %v", q.RepliedAt, first)
		}
		if q.AdminReply != "revised answer" {
			t.Errorf("AdminReply = %q, want the edited text", q.AdminReply)
		}
	})

	t.Run("emptying the reply keeps the stamp", func(t *testing.T) {
		q := &Query{}
		q.ApplyReply("answer", first)
		q.ApplyReply("", later)
		if q.RepliedAt == nil || !q.RepliedAt.Equal(first) {
			t.Errorf("RepliedAt = %v, want original %v", q.RepliedAt, first)
		}
		if q.AdminReply != "" {
			t.Errorf("AdminReply = %q, want empty", q.AdminReply)
		}
	})

	t.Run("empty reply never stamps", func(t *testing.T) {
		q := &Query{}
		if q.ApplyReply("", first) {
			t.Error("empty reply should not stamp")
		}
		if q.RepliedAt != nil {
			t.Error("RepliedAt should stay nil")
		}
	})

	t.Run("identical reply does not stamp", func(t *testing.T) {
		q := &Query{AdminReply: "same"}
		if q.ApplyReply("same", first) {
			t.Error("unchanged reply should not stamp")
		}
	})
}
