// Package processor contains the application logic behind each command
// line mode. It builds the word store and the card session from the flags,
// hands them to the desktop or terminal shell, and implements the one-shot
// modes: statistics, reset, archive, word list import and Anki export. This
// package serves as the main coordinator between all other components.
package processor
