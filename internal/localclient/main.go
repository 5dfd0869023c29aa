package localclient

import (
	"bytes"
	"context"
	"os/exec"
	"os/user"
	"strings"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
)

type Command struct {
	Command          string
	WorkingDirectory string
	Args             []string
}

// LocalClient runs commands on the machine the lister runs on, which is the
// Proxmox VE node itself when the local source is selected.
type LocalClient struct{}

func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

func (l *LocalClient) RunCommand(ctx context.Context, command string, arguments []string) (string, error) {
	cmd := Command{
		Command: command,
		Args:    arguments,
	}

	tflog.Debug(ctx, "Running local command "+command+" "+strings.Join(arguments, " "))
	stdout, _, _, err := executeWithOutput(ctx, cmd)
	return stdout, err
}

func executeWithOutput(ctx context.Context, command Command) (stdout string, stderr string, exitCode int, err error) {
	path, err := exec.LookPath(command.Command)
	if err != nil {
		return "", "", -1, errors.Wrapf(err, "%s executable not found", command.Command)
	}

	cmd := exec.CommandContext(ctx, path, command.Args...)
	if command.WorkingDirectory != "" {
		cmd.Dir = command.WorkingDirectory
	}

	var stdOut, stdErr bytes.Buffer
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	runErr := cmd.Run()
	stdout = strings.TrimSuffix(stdOut.String(), "\n")
	stderr = strings.TrimSuffix(stdErr.String(), "\n")
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	if runErr != nil {
		if stderr != "" {
			return stdout, stderr, exitCode, errors.Wrap(runErr, stderr)
		}
		return stdout, stderr, exitCode, errors.Wrapf(runErr, "error running %s", command.Command)
	}

	return stdout, stderr, exitCode, nil
}

func (l *LocalClient) Username() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
