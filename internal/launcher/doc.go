// Package launcher starts applications as detached child processes.
//
// A launch runs these steps in order:
//  1. Validate the application name (single safe path segment)
//  2. Resolve the interpreter and script extension for the host OS
//  3. Build the script path apps/<name>/run<ext>
//  4. Claim a port from the shared port.Table (scan + insert, one lock)
//  5. Spawn the interpreter with the script, PORT set in the child's
//     environment and stdout/stderr discarded
//
// Steps 1-3 fail before the table is touched. Once step 4 succeeds the
// port stays assigned even if step 5 fails; there is no rollback and no
// release when the child exits. The spawned process is never supervised:
// its exit code, output and lifetime are not reported.
//
// All errors are *model.CLIError values wrapping one of the sentinel
// errors below, so callers can use errors.Is and the CLI can map them to
// exit codes.
package launcher
