// Package logger formats build events for the terminal and the run log.
//
// Events are produced with zerolog. ConsoleWriter turns each JSON event into
// a single glyph-prefixed line, and LogFile keeps a timestamped plain-text
// copy of everything shown.
package logger
