package testutil

import "fmt"

// Chop cuts s into fragments of the given sizes, in order. Whatever remains
// after the last size becomes a final fragment. Concatenating the result
// always restores s.
func Chop(s string, sizes ...int) []string {
	var frags []string

	for _, n := range sizes {
		if n > len(s) {
			n = len(s)
		}
		frags = append(frags, s[:n])
		s = s[n:]
	}

	if s != "" {
		frags = append(frags, s)
	}

	return frags
}

// ChopEvery cuts s into fragments of at most n bytes.
func ChopEvery(s string, n int) []string {
	var frags []string

	for len(s) > n {
		frags = append(frags, s[:n])
		s = s[n:]
	}

	if s != "" {
		frags = append(frags, s)
	}

	return frags
}

// Channel feeds fragments into a closed channel, ready to pipe into a stage.
func Channel(frags ...string) <-chan string {
	ch := make(chan string, len(frags))
	for _, f := range frags {
		ch <- f
	}
	close(ch)

	return ch
}

// InputRecord builds one framed input wire record: "data: " prefix, tuple,
// record delimiter.
func InputRecord(nodeID, next string) string {
	return fmt.Sprintf("data: [\"input\",{\"node\":{\"id\":%q},\"inputArguments\":{\"schema\":{}}},%q]\n\n", nodeID, next)
}

// OutputRecord builds one framed output wire record.
func OutputRecord(nodeID, next string) string {
	return fmt.Sprintf("data: [\"output\",{\"node\":{\"id\":%q},\"outputs\":{\"result\":\"ok\"}},%q]\n\n", nodeID, next)
}

// ErrorRecord builds one framed error wire record.
func ErrorRecord(msg string) string {
	return fmt.Sprintf("data: [\"error\",%q]\n\n", msg)
}
