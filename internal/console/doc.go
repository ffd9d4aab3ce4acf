// Package console is the interactive terminal front end for the sector API.
//
// The console lists sectors in a table and drives add, edit and delete
// through a form and a confirmation dialog. Every network call runs as a
// tea.Cmd; its result comes back to Update as a message, so the model is
// only ever touched by the Bubble Tea event loop.
//
// Failures never escape the model. A failed list load replaces the table
// with a single error row; every other failure is shown as an alert that the
// next key press dismisses.
package console
