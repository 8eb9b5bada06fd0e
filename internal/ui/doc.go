// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI drives a [tasks.Submission] through three views:
//  1. [FormView] : two path inputs for the followers and following exports; errors render inline
//  2. [SubmittingView] : spinner while the single upload is in flight
//  3. [ResultView] : both lists side by side, with e to write result.csv and r to start over
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// A failed submission returns to the form with the paths intact so the user can fix them and submit again.
package ui
