package venv

import (
	"os"
	"strings"
)

// Platform identifies the on-disk layout convention of a virtual environment
type Platform string

const (
	PlatformUnix    Platform = "unix"
	PlatformWindows Platform = "windows"
)

// Layout describes where the interesting executables live inside an environment
type Layout struct {
	Platform Platform
	Dir      string // Environment root
	BinDir   string // Directory holding the interpreter and installer
	Python   string // Interpreter executable
	Pip      string // Installer executable
}

// PlatformFor maps a GOOS value to its environment layout convention
func PlatformFor(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformUnix
}

// LayoutFor resolves the executable paths of the environment rooted at dir.
// Paths are joined with the target platform's separator, not the host's, so
// the result does not depend on where the code runs.
func LayoutFor(platform Platform, dir string) Layout {
	switch platform {
	case PlatformWindows:
		binDir := join(`\`, dir, "Scripts")
		return Layout{
			Platform: platform,
			Dir:      dir,
			BinDir:   binDir,
			Python:   join(`\`, binDir, "python.exe"),
			Pip:      join(`\`, binDir, "pip.exe"),
		}
	default:
		binDir := join("/", dir, "bin")
		return Layout{
			Platform: PlatformUnix,
			Dir:      dir,
			BinDir:   binDir,
			Python:   join("/", binDir, "python"),
			Pip:      join("/", binDir, "pip"),
		}
	}
}

// ActivateHint returns the command an operator types to activate the
// environment named name from the project root
func ActivateHint(platform Platform, name string) string {
	if platform == PlatformWindows {
		return join(`\`, name, "Scripts", "activate")
	}
	return "source " + join("/", name, "bin", "activate")
}

// Exists reports whether something is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func join(sep string, elems ...string) string {
	parts := make([]string, 0, len(elems))
	for i, e := range elems {
		if i > 0 {
			e = strings.TrimLeft(e, `/\`)
		}
		if i < len(elems)-1 {
			e = strings.TrimRight(e, `/\`)
		}
		if e == "" && i > 0 {
			continue
		}
		parts = append(parts, e)
	}
	return strings.Join(parts, sep)
}
