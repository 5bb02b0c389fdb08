package runevent

// FindContinuation scans a drained event list from the most recent event
// backwards and returns the continuation token of the first input or output
// event it encounters. This is the token a caller should use to resume the
// run. The second return value is false when no resumable event exists,
// including for empty lists and lists containing only error events (error
// events never carry a token).
func FindContinuation(events []RunEvent) (string, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		switch ev := events[i].(type) {
		case InputEvent:
			return ev.Next, true
		case OutputEvent:
			return ev.Next, true
		}
	}
	return "", false
}
