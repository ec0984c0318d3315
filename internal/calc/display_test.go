package calc

import "testing"

func TestWatchDisplayReportsEveryChange(t *testing.T) {
	buf := NewBufferDisplay()
	var seen []string
	c := NewController(WatchDisplay(buf, func(text string) { seen = append(seen, text) }), nil, nil)

	for _, p := range []string{"9", "/", "3", "=", "C"} {
		if err := c.Press(p); err != nil {
			t.Fatalf("Press(%q) failed: %v", p, err)
		}
	}

	want := []string{"9", "9/", "9/3", "3.0", ""}
	if len(seen) != len(want) {
		t.Fatalf("Expected %d changes, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("Change %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
	if buf.FocusCount() != 4 {
		t.Errorf("Expected focus to reach the wrapped display 4 times, got %d", buf.FocusCount())
	}
}
