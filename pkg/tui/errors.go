package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of attempts.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
	// ErrScriptExhausted is returned by ScriptedDriver when it runs out of answers.
	ErrScriptExhausted = errors.New("tui: no scripted answer left")
	// ErrUnknownOption is returned by ScriptedDriver when a select answer is not
	// one of the offered options.
	ErrUnknownOption = errors.New("tui: answer is not an offered option")
)
