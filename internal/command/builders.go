package command

// VenvCreate builds the command creating a virtual environment named dir
func VenvCreate(python, dir, workDir string) Command {
	return Command{
		Name:    python,
		Args:    []string{"-m", "venv", dir},
		WorkDir: workDir,
	}
}

// PipUpgrade builds the command upgrading the environment's installer
func PipUpgrade(pip, workDir string) Command {
	return Command{
		Name:    pip,
		Args:    []string{"install", "--upgrade", "pip"},
		WorkDir: workDir,
	}
}

// PipInstallRequirements builds the command installing a dependency file
func PipInstallRequirements(pip, requirements, workDir string) Command {
	return Command{
		Name:    pip,
		Args:    []string{"install", "-r", requirements},
		WorkDir: workDir,
	}
}

// PythonModule builds a "python -m module args..." command, used to start
// the notebook server with the environment's own interpreter
func PythonModule(python, module string, args []string, workDir string) Command {
	cmdArgs := append([]string{"-m", module}, args...)
	return Command{
		Name:    python,
		Args:    cmdArgs,
		WorkDir: workDir,
	}
}

// ShellLine builds a command that is handed to the shell as written
func ShellLine(line, workDir string, env map[string]string) Command {
	return Command{
		Raw:     line,
		WorkDir: workDir,
		Env:     env,
	}
}
