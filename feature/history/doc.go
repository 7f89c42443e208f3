// Package history persists run reports in the embedded SQLite database so
// past outcomes and their conflicts can be inspected with the history
// command. Persistence is best-effort: failures are logged by callers and
// never change the exit code of a run.
package history
