package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROXMOX_VE_ENDPOINT", "PROXMOX_VE_NODE", "PROXMOX_VE_API_TOKEN_ID", "PROXMOX_VE_API_TOKEN_SECRET",
		"PROXMOX_VE_INSECURE", "PROXMOX_VE_TIMEOUT", "PROXMOX_VE_SOURCE", "PROXMOX_VE_SSH_HOST",
		"PROXMOX_VE_SSH_PORT", "PROXMOX_VE_SSH_PASSWORD", "PROXMOX_VE_SSH_KEY_FILE", "PROXMOX_VE_SSH_PRIVATE_KEY",
		"PROXMOX_VE_SSH_KNOWN_HOSTS", "PROXMOX_VE_SSH_INSECURE",
	} {
		t.Setenv(key, "")
	}
}

func pveServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "PVEAPIToken=root@pam!ci=secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api2/json/nodes/pve/qemu":
			_, _ = w.Write([]byte(`{"data":[{"vmid":100,"name":"web1","status":"running"},{"vmid":101,"name":"db1","status":"stopped"}]}`))
		case "/api2/json/nodes/pve/qemu/100/status/current":
			_, _ = w.Write([]byte(`{"data":{"vmid":100,"name":"web1","status":"running","qmpstatus":"paused","ha":{"managed":0}}}`))
		case "/api2/json/nodes/pve/qemu/404/status/current":
			conn, buf, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Errorf("hijack: %v", err)
				return
			}
			defer conn.Close()
			body := `{"data":null}`
			fmt.Fprintf(buf, "HTTP/1.1 500 Configuration file 'nodes/pve/qemu-server/404.conf' does not exist\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s", len(body), body)
			_ = buf.Flush()
		case "/api2/json/nodes":
			_, _ = w.Write([]byte(`{"data":[{"node":"pve","status":"online"}]}`))
		case "/api2/json/version":
			_, _ = w.Write([]byte(`{"data":{"release":"8.2","version":"8.2.4","repoid":"faa83925"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func runCli(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunListsVms(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, _ := runCli(t, "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "secret")

	assert.Equal(t, exitOk, code)
	assert.Equal(t, "100 - web1 (running)\n101 - db1 (stopped)\n", stdout)
}

func TestRunReadsEnvironment(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)
	t.Setenv("PROXMOX_VE_ENDPOINT", server.URL)
	t.Setenv("PROXMOX_VE_API_TOKEN_ID", "root@pam!ci")
	t.Setenv("PROXMOX_VE_API_TOKEN_SECRET", "secret")

	code, stdout, _ := runCli(t, "-filter", "status=stopped")

	assert.Equal(t, exitOk, code)
	assert.Equal(t, "101 - db1 (stopped)\n", stdout)
}

func TestRunUnauthorizedPrintsDiagnostic(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, _ := runCli(t, "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "wrong")

	assert.Equal(t, exitOk, code)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Error retrieving VMs: "))
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, stderr := runCli(t, "-verbose", "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "secret")

	assert.Equal(t, exitOk, code)
	assert.NotEmpty(t, stdout)
	assert.Contains(t, stderr, `"@level"`)
}

func TestRunListsNodes(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, _ := runCli(t, "-nodes", "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "secret")

	assert.Equal(t, exitOk, code)
	assert.Equal(t, "Proxmox VE 8.2.4\npve (online)\n", stdout)
}

func TestRunPrintsSingleVm(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, _ := runCli(t, "-vmid", "100", "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "secret")

	assert.Equal(t, exitOk, code)
	assert.Equal(t, "100 - web1 (running) qmp=paused\n", stdout)
}

func TestRunSingleVmNotFound(t *testing.T) {
	clearEnv(t)
	server := pveServer(t)

	code, stdout, _ := runCli(t, "-vmid", "404", "-endpoint", server.URL, "-token-id", "root@pam!ci", "-token-secret", "secret")

	assert.Equal(t, exitOk, code)
	assert.Equal(t, "Error retrieving VMs: vm 404 not found on node pve\n", stdout)
}

func TestRunConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing endpoint", []string{"-token-id", "root@pam!ci", "-token-secret", "secret"}},
		{"missing token", []string{"-endpoint", "https://pve:8006"}},
		{"bad token id", []string{"-endpoint", "https://pve:8006", "-token-id", "root", "-token-secret", "secret"}},
		{"bad filter", []string{"-endpoint", "https://pve:8006", "-token-id", "root@pam!ci", "-token-secret", "secret", "-filter", "cpu=1"}},
		{"unknown flag", []string{"-bogus"}},
		{"missing config file", []string{"-config", "/does/not/exist.yaml"}},
		{"nodes without api", []string{"-nodes", "-source", "local"}},
		{"vmid without api", []string{"-vmid", "100", "-source", "local"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			code, stdout, stderr := runCli(t, tt.args...)
			assert.Equal(t, exitConfigError, code)
			assert.Empty(t, stdout)
			assert.NotEmpty(t, stderr)
		})
	}
}

func closedPort(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	require.NoError(t, listener.Close())
	return port
}

func TestRunSshRequiresKnownHosts(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	code, stdout, stderr := runCli(t, "-source", "ssh", "-ssh-host", "127.0.0.1", "-ssh-password", "secret")

	assert.Equal(t, exitConfigError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "known_hosts")
}

func TestRunSshInsecureOptOut(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	code, stdout, _ := runCli(t, "-source", "ssh", "-ssh-host", "127.0.0.1", "-ssh-port", closedPort(t), "-ssh-password", "secret", "-ssh-insecure")

	assert.Equal(t, exitOk, code)
	assert.True(t, strings.HasPrefix(stdout, "Error retrieving VMs: "), stdout)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCli(t, "-version")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "pve-list-vms version dev\n", stdout)
}
