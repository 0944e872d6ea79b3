package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	EnvConfigFile = "RELPERF_CONFIG"
	EnvProvider   = "RELPERF_PROVIDER"
	EnvNoCache    = "RELPERF_NO_CACHE"
	EnvVerbose    = "RELPERF_VERBOSE"
)

// RunExtension attempts to find and execute an external relperf-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "relperf-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debugf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

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

// extensionEnv passes the global flags to extensions as environment variables.
func extensionEnv() []string {
	env := []string{
		EnvConfigFile + "=" + *configFile,
		EnvProvider + "=" + *providerName,
		EnvNoCache + "=" + strconv.FormatBool(*noCache),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
	if *eodhdAPIKey != "" {
		env = append(env, envEODHDAPIKey+"="+*eodhdAPIKey)
	}
	return env
}
