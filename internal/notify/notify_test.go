package notify

import "testing"

func TestQueue_DrainEmptiesQueue(t *testing.T) {
	q := NewQueue(5)
	q.Notify(Successf("Login successful", ""))
	q.Notify(Errorf("", "Could not sync cart. Please try again."))

	got := q.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d notices, want 2", len(got))
	}
	if got[0].Level != Success || got[1].Level != Error {
		t.Errorf("unexpected order %+v", got)
	}
	if got[0].At.IsZero() {
		t.Error("notice was not stamped")
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}
	if again := q.Drain(); again == nil || len(again) != 0 {
		t.Errorf("second Drain() = %v, want empty non-nil slice", again)
	}
}

func TestQueue_DropsOldest(t *testing.T) {
	q := NewQueue(2)
	q.Notify(Infof("", "one"))
	q.Notify(Infof("", "two"))
	q.Notify(Infof("", "three"))

	got := q.Drain()
	if len(got) != 2 || got[0].Message != "two" || got[1].Message != "three" {
		t.Errorf("Drain() = %+v, want [two three]", got)
	}
}
