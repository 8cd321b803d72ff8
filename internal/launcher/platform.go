package launcher

import (
	"errors"
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/shinji-kodama/portlauncher/internal/model"
)

// ErrUnsupportedPlatform is returned for operating systems other than
// Windows, macOS and Linux.
var ErrUnsupportedPlatform = errors.New("unsupported operating system")

// ErrInvalidName is returned when an application name is not a single safe
// path segment.
var ErrInvalidName = errors.New("invalid application name")

// Platform describes how run scripts are executed on one operating system.
type Platform struct {
	// GOOS is the runtime.GOOS value this platform was resolved for.
	GOOS string

	// Interpreter is the argv prefix; the script path is appended to it.
	Interpreter []string

	// Extension is the run script extension including the dot.
	Extension string
}

// ResolvePlatform returns the interpreter and script extension for goos.
//
//	windows       → cmd /C  .bat
//	darwin, linux → sh      .sh
func ResolvePlatform(goos string) (Platform, error) {
	switch goos {
	case "windows":
		// /C makes cmd run the script and exit instead of staying open.
		return Platform{GOOS: goos, Interpreter: []string{"cmd", "/C"}, Extension: ".bat"}, nil
	case "darwin", "linux":
		return Platform{GOOS: goos, Interpreter: []string{"sh"}, Extension: ".sh"}, nil
	default:
		return Platform{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// WithInterpreter returns a copy of p using argv as the interpreter. A nil
// or empty argv leaves p unchanged.
func (p Platform) WithInterpreter(argv []string) Platform {
	if len(argv) == 0 {
		return p
	}
	p.Interpreter = append([]string(nil), argv...)
	return p
}

// Command returns the full argv for running scriptPath.
func (p Platform) Command(scriptPath string) []string {
	argv := make([]string, 0, len(p.Interpreter)+1)
	argv = append(argv, p.Interpreter...)
	return append(argv, scriptPath)
}

// ScriptPath returns <appsDir>/<name>/run<ext>.
//
// name must pass model.ValidateAppName. The join is additionally done with
// securejoin so a symlinked app directory cannot point outside appsDir.
func ScriptPath(appsDir, name, ext string) (string, error) {
	if err := model.ValidateAppName(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	appDir, err := securejoin.SecureJoin(appsDir, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return filepath.Join(appDir, "run"+ext), nil
}
