package stream

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/boardstream/internal/testutil"
)

func pushAll(r *Reassembler, frags []string) []string {
	var records []string
	for _, frag := range frags {
		records = append(records, r.Push(frag)...)
	}
	return records
}

func TestReassembler_SingleFragment(t *testing.T) {
	r := NewReassembler(nil)

	records := r.Push("rec1\n\nrec2\n\n")
	assert.Equal(t, []string{"rec1\n\n", "rec2\n\n"}, records)

	_, pending := r.Pending()
	assert.False(t, pending)
}

func TestReassembler_BuffersIncompleteTail(t *testing.T) {
	r := NewReassembler(nil)

	// No delimiter at all: purely buffered, nothing emitted.
	assert.Empty(t, r.Push("partial"))

	partial, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, "partial", partial)

	// The delimiter arrives: the buffered partial completes.
	records := r.Push("-done\n\n")
	assert.Equal(t, []string{"partial-done\n\n"}, records)

	_, ok = r.Pending()
	assert.False(t, ok)
}

func TestReassembler_DelimiterSplitAcrossFragments(t *testing.T) {
	r := NewReassembler(nil)

	assert.Empty(t, r.Push("rec1\n"))
	records := r.Push("\nrec2\n\n")

	// The pending partial combined with the next segment completes two
	// records at once.
	assert.Equal(t, []string{"rec1\n\n", "rec2\n\n"}, records)
}

func TestReassembler_MixedFragment(t *testing.T) {
	r := NewReassembler(nil)

	// One fragment carries a complete record plus the head of the next.
	records := r.Push("rec1\n\nrec")
	assert.Equal(t, []string{"rec1\n\n"}, records)

	records = r.Push("2\n\n")
	assert.Equal(t, []string{"rec2\n\n"}, records)
}

func TestReassembler_DanglingPartialAtClose(t *testing.T) {
	r := NewReassembler(nil)

	assert.Empty(t, r.Push("rec1\n\ntrailing-without-delimiter"))

	// The terminal dangling partial stays pending; resolution is the
	// caller's policy.
	partial, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, "trailing-without-delimiter", partial)
}

// Fragment-boundary invariance: however a well-formed record stream is cut
// into fragments, the emitted records are identical to pushing it whole.
func TestReassembler_FragmentBoundaryInvariance(t *testing.T) {
	wire := "rec1\n\nlonger record two\n\n\n\nrec4 with \n inside\n\n"

	want := pushAll(NewReassembler(nil), []string{wire})

	t.Run("exhaustive chunk sizes", func(t *testing.T) {
		for size := 1; size <= len(wire); size++ {
			frags := testutil.ChopEvery(wire, size)
			got := pushAll(NewReassembler(nil), frags)
			require.Equal(t, want, got, "chunk size %d changed the record sequence", size)
		}
	})

	t.Run("adversarial cut points", func(t *testing.T) {
		cuts := [][]int{
			{4},          // mid-record
			{5, 1},       // between the two delimiter newlines
			{6},          // right after a delimiter
			{4, 1, 1, 1}, // delimiter sliced one byte at a time
			{25, 2},
		}
		for i, sizes := range cuts {
			frags := testutil.Chop(wire, sizes...)
			got := pushAll(NewReassembler(nil), frags)
			require.Equal(t, want, got, fmt.Sprintf("cut %d: %q", i, frags))
		}
	})
}

func TestReassembler_EmptyFragments(t *testing.T) {
	r := NewReassembler(nil)

	assert.Empty(t, r.Push(""))
	assert.Empty(t, r.Push(""))

	_, ok := r.Pending()
	assert.False(t, ok)
}

func TestReassembler_Pipe(t *testing.T) {
	r := NewReassembler(nil)

	out := r.Pipe(context.Background(), testutil.Channel("rec1\n\nre", "c2\n\n", "dangling"))

	var got []string
	for rec := range out {
		got = append(got, rec)
	}

	// The dangling partial is dropped when the input closes.
	assert.Equal(t, []string{"rec1\n\n", "rec2\n\n"}, got)
}
