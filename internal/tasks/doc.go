// Package tasks holds the two operations behind the follow reciprocity workflow.
//
// # Reciprocity
//
// [Reciprocity] compares a followers list against a following list and returns the accounts
// on each side that are missing from the other. It is a pure function used by the backend
// upload handler and the offline `analyze` command.
//
// # Submission
//
// [Submission] is the client-side flow that sends two export files to the backend:
//
//	Idle ──Submit──▶ Submitting ──ok──▶ ResultReady
//	  │                  │
//	  │ missing file     └──err──▶ Failed
//	  └──────────────────────────▶ Failed
//
// A missing file fails with [shared.ErrValidation] before any network call. Backend and
// transport failures fail with [shared.ErrTransport]. Failures clear the previous result,
// are never retried, and leave the flow ready for another Submit.
//
// Only one Submit may be in flight per [Submission]; a concurrent call returns
// [shared.ErrSubmissionInFlight] without touching state.
package tasks
