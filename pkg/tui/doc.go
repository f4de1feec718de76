// Package tui fills form sessions from an interactive terminal.
//
// A Runner walks the fields of a schema in definition order and asks the
// PromptDriver for each value. Choice fields become select prompts, acceptance
// fields become yes/no prompts and secret fields are read without echo. A value
// that fails validation is reported through Info and asked again. When an
// answer invalidates a field that was already answered, that field is asked
// again too.
//
//	driver := tui.NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr)
//	rec, err := tui.NewRunner(driver).Fill(ctx, schema)
//	if errors.Is(err, tui.ErrAborted) {
//		// Ctrl+C
//	}
//
// ScriptedDriver answers prompts from a fixed list and is meant for tests.
package tui
