// Package apps discovers launchable applications under the apps directory.
//
// An application is any subdirectory with a valid name that contains a run
// script for the host platform (run.sh or run.bat). A directory may also
// carry an app.json manifest with a display name and description. The
// manifest supports JSONC (JSON with Comments), so this package uses
// github.com/tidwall/jsonc to strip comments before parsing with
// encoding/json.
//
// Discovery is informational: it feeds the apps command, the HTTP API and
// the tray menu. Launching never consults it.
package apps
