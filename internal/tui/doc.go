// Package tui is the terminal front end of flashy. It renders the current
// card with lipgloss and maps key presses onto session actions; reveals
// fired by the session timer arrive as SnapshotMsg.
package tui
