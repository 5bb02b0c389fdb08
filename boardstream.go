// Package boardstream provides a high-level façade over the board client and
// the run-event decode pipeline. Most applications interact with this module
// by:
//  1. Creating a board.Client via board.New() or board.FromEnv()
//  2. Starting a streaming run (Client.Run) and ranging over its Events
//     channel, or draining a whole stream with RunAndCollect
//  3. Resuming paused runs with the continuation token from NextToken
//
// The façade delegates decoding to the stream pipeline while keeping setup
// and usage ergonomics concise. Defaults are safe for local development;
// production deployments typically supply a structured logger and a tuned
// HTTP client.
package boardstream

import (
	"context"

	"github.com/hupe1980/boardstream/board"
	"github.com/hupe1980/boardstream/runevent"
	"github.com/hupe1980/boardstream/stream"
)

// RunAndCollect starts one board run, drains its event stream fully and
// returns all events in arrival order. Decode failures appear as error
// events in the result; transport failures are returned as an error before
// any event is produced.
func RunAndCollect(ctx context.Context, client *board.Client, path string, inputs map[string]any, optFns ...func(o *board.RunOptions)) ([]runevent.RunEvent, error) {
	run, err := client.Run(ctx, path, inputs, optFns...)
	if err != nil {
		return nil, err
	}
	defer run.Close()

	return stream.Collect(ctx, run.Events()), nil
}

// NextToken returns the continuation token to resume from after draining a
// run, if one exists. It is a re-export of runevent.FindContinuation.
func NextToken(events []runevent.RunEvent) (string, bool) {
	return runevent.FindContinuation(events)
}
