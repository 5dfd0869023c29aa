package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"terraform-provider-pve/internal/constants"
	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/cjlapao/common-go/helper"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Source string

const (
	SourceApi   Source = "api"
	SourceLocal Source = "local"
	SourceSsh   Source = "ssh"
)

type SshConfig struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	KeyFile        string `yaml:"key_file"`
	PrivateKey     string `yaml:"private_key"`
	KnownHostsFile string `yaml:"known_hosts_file"`
	// Insecure skips host key verification.
	Insecure bool `yaml:"insecure"`
}

// Config is what the command line lister needs to reach a node. Values are
// layered: defaults, yaml file, .env file, environment, flags.
type Config struct {
	Endpoint       string    `yaml:"endpoint"`
	Node           string    `yaml:"node"`
	ApiTokenId     string    `yaml:"api_token_id"`
	ApiTokenSecret string    `yaml:"api_token_secret"`
	Insecure       bool      `yaml:"insecure"`
	Timeout        string    `yaml:"timeout"`
	Source         Source    `yaml:"source"`
	Filter         string    `yaml:"filter"`
	Ssh            SshConfig `yaml:"ssh"`
}

func Default() *Config {
	return &Config{
		Node:    constants.DefaultNode,
		Timeout: constants.DefaultTimeout,
		Source:  SourceApi,
		Ssh: SshConfig{
			Port: constants.DefaultSshPort,
			User: constants.DefaultSshUser,
		},
	}
}

// Load builds the configuration from an optional yaml file, an optional
// .env file and the process environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFile(path string) error {
	content, err := helper.ReadFromFile(path)
	if err != nil {
		return errors.Wrapf(err, "error reading config file %s", path)
	}

	if err := yaml.Unmarshal(content, c); err != nil {
		return errors.Wrapf(err, "error parsing config file %s", path)
	}

	return nil
}

// LoadEnvFile loads a .env file into the environment without overriding
// variables that are already set. An empty path loads ./.env if present.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "error loading env file %s", path)
	}
	return nil
}

func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	setString := func(key string, target *string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}

	setString(constants.ENV_ENDPOINT, &c.Endpoint)
	setString(constants.ENV_NODE, &c.Node)
	setString(constants.ENV_API_TOKEN_ID, &c.ApiTokenId)
	setString(constants.ENV_API_TOKEN_SECRET, &c.ApiTokenSecret)
	setString(constants.ENV_TIMEOUT, &c.Timeout)
	setString(constants.ENV_SSH_HOST, &c.Ssh.Host)
	setString(constants.ENV_SSH_PORT, &c.Ssh.Port)
	setString(constants.ENV_SSH_USER, &c.Ssh.User)
	setString(constants.ENV_SSH_PASSWORD, &c.Ssh.Password)
	setString(constants.ENV_SSH_KEY_FILE, &c.Ssh.KeyFile)
	setString(constants.ENV_SSH_PRIVATE_KEY, &c.Ssh.PrivateKey)
	setString(constants.ENV_SSH_KNOWN_HOSTS, &c.Ssh.KnownHostsFile)

	if v, ok := lookup(constants.ENV_SOURCE); ok && v != "" {
		c.Source = Source(strings.ToLower(v))
	}

	if err := setBool(lookup, constants.ENV_INSECURE, &c.Insecure); err != nil {
		return err
	}
	return setBool(lookup, constants.ENV_SSH_INSECURE, &c.Ssh.Insecure)
}

func setBool(lookup func(string) (string, bool), key string, target *bool) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	value, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Wrapf(err, "invalid %s value %q", key, v)
	}
	*target = value
	return nil
}

// RegisterFlags declares the configuration flags on fs.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String("endpoint", "", "Proxmox VE endpoint, e.g. https://pve.example.com:8006")
	fs.String("node", "", "Node to list the virtual machines of")
	fs.String("token-id", "", "API token id (user@realm!token)")
	fs.String("token-secret", "", "API token secret")
	fs.Bool("insecure", false, "Skip TLS certificate verification")
	fs.String("timeout", "", "HTTP timeout, e.g. 30s")
	fs.String("source", "", "Where to read the machines from: api, local or ssh")
	fs.String("filter", "", "Only list machines matching field=regex (vmid, name, status, tags)")
	fs.String("ssh-host", "", "SSH host for the ssh source")
	fs.String("ssh-port", "", "SSH port for the ssh source")
	fs.String("ssh-user", "", "SSH user for the ssh source")
	fs.String("ssh-password", "", "SSH password for the ssh source")
	fs.String("ssh-key-file", "", "SSH private key file for the ssh source")
	fs.String("ssh-known-hosts", "", "known_hosts file used to verify the ssh host key, ~/.ssh/known_hosts by default")
	fs.Bool("ssh-insecure", false, "Skip ssh host key verification")
}

// ApplyFlags copies the flags explicitly set on fs over the configuration.
func (c *Config) ApplyFlags(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "endpoint":
			c.Endpoint = value
		case "node":
			c.Node = value
		case "token-id":
			c.ApiTokenId = value
		case "token-secret":
			c.ApiTokenSecret = value
		case "insecure", "ssh-insecure":
			insecure, parseErr := strconv.ParseBool(value)
			if parseErr != nil {
				err = errors.Wrapf(parseErr, "invalid %s flag", f.Name)
				return
			}
			if f.Name == "insecure" {
				c.Insecure = insecure
			} else {
				c.Ssh.Insecure = insecure
			}
		case "timeout":
			c.Timeout = value
		case "source":
			c.Source = Source(strings.ToLower(value))
		case "filter":
			c.Filter = value
		case "ssh-host":
			c.Ssh.Host = value
		case "ssh-port":
			c.Ssh.Port = value
		case "ssh-user":
			c.Ssh.User = value
		case "ssh-password":
			c.Ssh.Password = value
		case "ssh-key-file":
			c.Ssh.KeyFile = value
		case "ssh-known-hosts":
			c.Ssh.KnownHostsFile = value
		}
	})
	return err
}

func (c *Config) TimeoutDuration() (time.Duration, error) {
	timeout, err := helpers.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "invalid timeout")
	}
	return timeout, nil
}

func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	switch c.Source {
	case SourceApi:
		if c.Endpoint == "" {
			return errors.Errorf("endpoint is required, set %s or -endpoint", constants.ENV_ENDPOINT)
		}
		if c.Node == "" {
			return errors.Errorf("node is required, set %s or -node", constants.ENV_NODE)
		}
		if c.ApiTokenId == "" || c.ApiTokenSecret == "" {
			return errors.Errorf("api token is required, set %s and %s", constants.ENV_API_TOKEN_ID, constants.ENV_API_TOKEN_SECRET)
		}
		if !authenticator.ValidTokenId(c.ApiTokenId) {
			return errors.Errorf("api token id %q is not in the user@realm!token form", c.ApiTokenId)
		}
	case SourceLocal:
	case SourceSsh:
		if c.Ssh.Host == "" {
			return errors.Errorf("ssh host is required for the ssh source, set %s or -ssh-host", constants.ENV_SSH_HOST)
		}
		if c.Ssh.Password == "" && c.Ssh.KeyFile == "" && c.Ssh.PrivateKey == "" {
			return errors.New("ssh source needs a password, a key file or a private key")
		}
	default:
		return errors.Errorf("unknown source %q, expected api, local or ssh", c.Source)
	}

	return nil
}
