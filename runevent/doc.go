// Package runevent defines the closed vocabulary of events reported by a
// remote board server while a run is in progress, and the parsing/validation
// that turns one wire record into a typed event.
//
// On the wire every event is a JSON array tuple whose first element is the
// discriminant:
//
//	["input",  {"node": {"id": ...}, "inputArguments": {...}}, nextToken]
//	["output", {"node": {"id": ...}, "outputs": {...}},        nextToken]
//	["error",  "message"]
//
// The union is closed: RunEvent has exactly three implementations
// (InputEvent, OutputEvent, ErrorEvent). Error events never carry a
// continuation token; input and output events always do. FindContinuation
// locates the most recent resumable token in a drained event list.
package runevent
