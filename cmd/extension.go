package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/finance/config"
)

// ExtensionPrefix prefixes the name of external subcommand binaries.
const ExtensionPrefix = "fin-"

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// The global flags are passed on as FIN_* environment variables.
//
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", name, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the environment describing the resolved configuration.
func extensionEnv() []string {
	env := []string{config.EnvVerbose + "=" + strconv.FormatBool(*Verbose)}
	cfg, err := appConfig()
	if err != nil {
		log.Printf("extension: cannot resolve configuration: %v", err)
		return env
	}
	return append(env,
		config.EnvStore+"="+cfg.Store,
		config.EnvBackend+"="+cfg.Backend,
		config.EnvCurrency+"="+cfg.Currency,
	)
}
