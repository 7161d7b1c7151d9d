// Package ui contains the Bubble Tea program that hosts one screen session
// in the terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, resize, pool events).
//   - Key presses and mouse clicks become screen.Click values sent to the
//     registry. The verdict decides what the viewer holds and whether the
//     inventory below the grid changes.
//   - Every update ends with Viewer.Flush so state changes made by handlers
//     are painted before the next View.
//
// Backend interactions:
//   - When the registry schedules through a backend.Pool, Update waits for
//     pool events and hands them to the dispatcher, which runs the async
//     cache's completion callback on this goroutine.
//   - Tick events only trigger a redraw so "loaded ... ago" stays current.
package ui
