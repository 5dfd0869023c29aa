package ssh

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cjlapao/common-go/helper"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const dialTimeout = 15 * time.Second

type SshAuthorization struct {
	User           string
	Password       string
	PrivateKey     string
	KeyFile        string
	KnownHostsFile string
	// InsecureIgnoreHostKey skips host key verification altogether.
	InsecureIgnoreHostKey bool
}

// SshClient runs commands on a Proxmox VE node over ssh.
type SshClient struct {
	config *ssh.ClientConfig
	Host   string
	Port   string
	Auth   SshAuthorization
}

func NewSshClient(host, port string, auth SshAuthorization) (*SshClient, error) {
	if host == "" {
		return nil, errors.New("ssh host cannot be empty")
	}

	sshClient := &SshClient{
		Host: host,
		Port: port,
		Auth: auth,
	}

	var authMethod ssh.AuthMethod
	switch {
	case sshClient.Auth.KeyFile != "":
		key, err := helper.ReadFromFile(sshClient.Auth.KeyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading ssh key file %s", sshClient.Auth.KeyFile)
		}

		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing ssh key file")
		}
		authMethod = ssh.PublicKeys(signer)
	case sshClient.Auth.PrivateKey != "":
		signer, err := ssh.ParsePrivateKey([]byte(sshClient.Auth.PrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "error parsing ssh private key")
		}
		authMethod = ssh.PublicKeys(signer)
	case sshClient.Auth.Password != "":
		authMethod = ssh.Password(sshClient.Auth.Password)
	default:
		return nil, errors.New("ssh requires a password, a private key or a key file")
	}

	config := &ssh.ClientConfig{
		User:    sshClient.Auth.User,
		Auth:    []ssh.AuthMethod{authMethod},
		Timeout: dialTimeout,
	}

	callback, err := hostKeyCallback(sshClient.Auth)
	if err != nil {
		return nil, err
	}
	config.HostKeyCallback = callback

	sshClient.config = config

	return sshClient, nil
}

// hostKeyCallback verifies host keys against the configured known_hosts file,
// ~/.ssh/known_hosts when none is set.
func hostKeyCallback(auth SshAuthorization) (ssh.HostKeyCallback, error) {
	if auth.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil // #nosec G106 explicit opt-out
	}

	file := auth.KnownHostsFile
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "error locating the default known_hosts file")
		}
		file = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(file)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading known hosts %s, set a known_hosts file or opt out of host key checking", file)
	}
	return callback, nil
}

func (c *SshClient) BaseAddress() string {
	port := c.Port
	if port == "" {
		port = "22"
	}
	return net.JoinHostPort(c.Host, port)
}

func (c *SshClient) RunCommand(ctx context.Context, command string, arguments []string) (string, error) {
	if c.config == nil {
		return "", errors.New("SSH Client not configured")
	}

	cmd := strings.TrimSpace(command + " " + strings.Join(arguments, " "))
	tflog.Debug(ctx, fmt.Sprintf("Running %q on %s", cmd, c.BaseAddress()))

	conn, err := ssh.Dial("tcp", c.BaseAddress(), c.config)
	if err != nil {
		return "", errors.Wrapf(err, "error connecting to %s", c.BaseAddress())
	}
	defer conn.Close()

	session, err := conn.NewSession()
	if err != nil {
		return "", errors.Wrap(err, "error opening ssh session")
	}
	defer session.Close()

	type result struct {
		output []byte
		err    error
	}
	done := make(chan result, 1)
	go func() {
		output, err := session.CombinedOutput(cmd)
		done <- result{output: output, err: err}
	}()

	select {
	case <-ctx.Done():
		conn.Close()
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return string(r.output), errors.Wrapf(r.err, "error running %q", cmd)
		}
		return string(r.output), nil
	}
}

func (c *SshClient) Username() string {
	return c.Auth.User
}
