package runevent

import "testing"

func TestFindContinuation(t *testing.T) {
	tests := []struct {
		name   string
		events []RunEvent
		want   string
		ok     bool
	}{
		{
			name: "latest resumable event wins",
			events: []RunEvent{
				NewInputEvent("n1", map[string]any{"schema": map[string]any{}}, "t1"),
				NewOutputEvent("n2", map[string]any{}, "t2"),
			},
			want: "t2",
			ok:   true,
		},
		{
			name: "errors are skipped on the way back",
			events: []RunEvent{
				NewOutputEvent("n1", map[string]any{}, "t1"),
				NewErrorEvent("x"),
			},
			want: "t1",
			ok:   true,
		},
		{
			name:   "error-only list has no token",
			events: []RunEvent{NewErrorEvent("x")},
			ok:     false,
		},
		{
			name: "empty list has no token",
			ok:   false,
		},
		{
			name: "input after output wins",
			events: []RunEvent{
				NewOutputEvent("n1", map[string]any{}, "t1"),
				NewInputEvent("n2", map[string]any{"schema": map[string]any{}}, "t2"),
			},
			want: "t2",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindContinuation(tt.events)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("FindContinuation() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
