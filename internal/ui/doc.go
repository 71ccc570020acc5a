// Package ui contains the Bubble Tea program that drives the pull request,
// workflow and log browser. The Model type owns every piece of mutable UI
// state and is only ever touched from Bubble Tea's update goroutine.
//
// Message flow:
//   - Key presses are converted to state.Key values and passed through the
//     pure state.Transition function, which returns the successor mode and
//     an Intent. execute (navigation.go) performs the intent's side effects:
//     cursor moves, scrolls, fetches and mutations.
//   - Fetches and mutations are handed to a Dispatcher as backend.Request
//     values stamped with a per-(kind, target) generation. spawnFetch skips
//     keys that already have a request in flight; refetch always supersedes.
//   - Results come back through the dispatcher's queue. processMessages
//     (backend.go) applies them in arrival order and drops any whose
//     generation is no longer current, so a slow response can never
//     overwrite a newer one.
//   - A tick message advances a counter that drives notification expiry
//     (status.go) and optional auto-refresh.
//
// State ownership:
//   - Entity snapshots live in the internal/state stores and are written
//     only by the data dispatcher in internal/data/dispatcher.
//   - Local side effects such as clipboard writes run through the
//     internal/ui/command bus so they stay off the update goroutine.
//
// View renders from a Snapshot copy and never mutates model state.
package ui
