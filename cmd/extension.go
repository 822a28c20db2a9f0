package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

const (
	EnvLogLevel  = "FZ_LOG_LEVEL"
	EnvTolerance = "FZ_TOLERANCE"
	EnvCurrency  = "FZ_CURRENCY"
	EnvStyle     = "FZ_STYLE"
)

// extensionEnv returns the environment of an extension: the current one plus the resolved configuration.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvLogLevel+"="+config.LogLevel)
	env = append(env, EnvTolerance+"="+config.Tolerance)
	env = append(env, EnvCurrency+"="+config.Currency)
	env = append(env, EnvStyle+"="+config.Style)
	return env
}

// RunExtension attempts to find and execute an external fz-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fz-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("external command not found", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
