package framework

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	dirPerm  = 0755
	filePerm = 0600
	execPerm = 0755
)

// fakePython stands in for a real interpreter. "-m venv <dir>" lays out an
// environment containing a copy of itself and a pip script; any other
// "-m <module>" pretends to run the module. Setting FAKE_PIP_FAIL makes pip
// fail for argument lists containing that text.
const fakePython = `#!/bin/sh
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  mkdir -p "$3/bin" || exit 1
  cp "$0" "$3/bin/python" || exit 1
  cat > "$3/bin/pip" <<'PIP'
#!/bin/sh
if [ -n "$FAKE_PIP_FAIL" ]; then
  case "$*" in
    *"$FAKE_PIP_FAIL"*)
      echo "ERROR: simulated failure for pip $*" >&2
      exit 1
      ;;
  esac
fi
echo "Successfully ran pip $*"
PIP
  chmod +x "$3/bin/pip"
  exit 0
fi
if [ "$1" = "-m" ]; then
  shift
  echo "fake $* started in $(pwd)"
  exit 0
fi
echo "unexpected arguments: $*" >&2
exit 2
`

type TestEnvironment struct {
	t          *testing.T
	tmpDir     string
	binary     string
	pythonPath string
	cleanup    []func()
}

func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("e2e tests drive a POSIX shell interpreter stub")
	}

	// Resolve symlinks so paths match what the binary sees as its cwd
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	env := &TestEnvironment{
		t:       t,
		tmpDir:  tmpDir,
		cleanup: []func(){},
	}

	env.buildBinary()
	env.installFakePython()

	return env
}

func (e *TestEnvironment) buildBinary() {
	e.t.Helper()

	binary := filepath.Join(e.tmpDir, "nbsetup")
	if prebuilt := os.Getenv("NBSETUP_E2E_BINARY"); prebuilt != "" {
		binary = prebuilt
		if _, err := os.Stat(binary); err != nil {
			e.t.Fatalf("Specified nbsetup binary not found: %s", binary)
		}
	} else {
		projectRoot := e.findProjectRoot()
		cmd := exec.Command("go", "build", "-o", binary, "./cmd/nbsetup")
		cmd.Dir = projectRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			e.t.Fatalf("Failed to build nbsetup binary: %v\nOutput: %s", err, output)
		}
	}

	// Validate the binary path
	binary = filepath.Clean(binary)
	if !filepath.IsAbs(binary) {
		absPath, err := filepath.Abs(binary)
		if err != nil {
			e.t.Fatalf("Failed to get absolute path for binary: %v", err)
		}
		binary = absPath
	}

	e.binary = binary
}

func (e *TestEnvironment) installFakePython() {
	e.t.Helper()

	path := filepath.Join(e.tmpDir, "fakebin", "python3")
	e.writeFile(path, fakePython)
	if err := os.Chmod(path, execPerm); err != nil {
		e.t.Fatalf("Failed to make fake interpreter executable: %v", err)
	}
	e.pythonPath = path
}

func (e *TestEnvironment) findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			e.t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

// CreateProject creates a project directory holding a requirements file
func (e *TestEnvironment) CreateProject(name string) *TestProject {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	e.writeFile(filepath.Join(dir, "requirements.txt"), "jupyterlab\npandas\n")

	return &TestProject{
		env:  e,
		path: dir,
	}
}

// CreateEmptyDir creates a directory without a requirements file
func (e *TestEnvironment) CreateEmptyDir(name string) *TestProject {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}

	return &TestProject{
		env:  e,
		path: dir,
	}
}

func (e *TestEnvironment) writeFile(path, content string) {
	e.t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// RunNBSetup runs the binary outside any project
func (e *TestEnvironment) RunNBSetup(args ...string) (string, error) {
	for _, arg := range args {
		if err := validateArg(arg); err != nil {
			return "", fmt.Errorf("invalid argument: %w", err)
		}
	}

	cmd := createSafeCommand(e.binary, args...)
	cmd.Dir = e.tmpDir
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (e *TestEnvironment) TmpDir() string {
	return e.tmpDir
}

// FakePython returns the path of the interpreter stub
func (e *TestEnvironment) FakePython() string {
	return e.pythonPath
}

func (e *TestEnvironment) WriteFile(path, content string) {
	e.writeFile(path, content)
}

func (e *TestEnvironment) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (e *TestEnvironment) Cleanup() {
	for _, fn := range e.cleanup {
		fn()
	}
}

type TestProject struct {
	env  *TestEnvironment
	path string
	vars []string
}

// SetEnv adds an environment variable for subsequent runs
func (p *TestProject) SetEnv(key, value string) {
	p.vars = append(p.vars, key+"="+value)
}

// RunNBSetup runs the binary inside the project with the fake interpreter,
// feeding input to its stdin
func (p *TestProject) RunNBSetup(input string, args ...string) (string, error) {
	for _, arg := range args {
		if err := validateArg(arg); err != nil {
			return "", fmt.Errorf("invalid argument: %w", err)
		}
	}

	args = append([]string{"--python", p.env.pythonPath}, args...)
	cmd := createSafeCommand(p.env.binary, args...)
	cmd.Dir = p.path
	cmd.Env = append(os.Environ(), "HOME="+p.env.tmpDir)
	cmd.Env = append(cmd.Env, p.vars...)
	cmd.Stdin = strings.NewReader(input)

	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (p *TestProject) Path() string {
	return p.path
}

func (p *TestProject) WriteConfig(content string) {
	p.env.writeFile(filepath.Join(p.path, ".nbsetup.yml"), content)
}

func (p *TestProject) WriteFile(path, content string) {
	p.env.writeFile(filepath.Join(p.path, path), content)
}

func (p *TestProject) HasFile(path string) bool {
	fullPath := filepath.Join(p.path, path)
	_, err := os.Stat(fullPath)
	return err == nil
}

func (p *TestProject) ReadFile(path string) string {
	fullPath := filepath.Join(p.path, path)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// ModTime returns the modification time of a project file
func (p *TestProject) ModTime(path string) time.Time {
	info, err := os.Stat(filepath.Join(p.path, path))
	if err != nil {
		p.env.t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return info.ModTime()
}

// validateArg checks if an argument is safe to pass to exec.Command
func validateArg(arg string) error {
	if arg == "" {
		return nil
	}

	// Check for shell metacharacters that could be dangerous
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\n", "\r"}
	for _, char := range dangerousChars {
		if strings.Contains(arg, char) {
			return fmt.Errorf("argument contains potentially dangerous character: %s", char)
		}
	}

	return nil
}

// createSafeCommand creates an exec.Cmd with a validated binary path
func createSafeCommand(binary string, args ...string) *exec.Cmd {
	// The binary path has already been validated during initialization
	return exec.Command(binary, args...)
}
