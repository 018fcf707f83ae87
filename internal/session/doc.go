// Package session implements the card lifecycle of a flashcard drill: draw
// a card, show its front, reveal the back after a delay, and either drop the
// card from the working set (correct) or put it back into the draw pool
// (wrong). It owns the reveal timer so a late timer can never flip a card
// that is no longer on screen.
package session
