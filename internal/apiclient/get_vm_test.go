package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVm(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"vmid":100,"name":"web1","status":"running","qmpstatus":"running","ha":{"managed":0}}}`))
	}))
	defer server.Close()

	vm, diags := GetVm(context.Background(), testHostConfig(server.URL), 100)

	require.False(t, diags.HasError())
	require.NotNil(t, vm)
	assert.Equal(t, "/api2/json/nodes/pve/qemu/100/status/current", gotPath)
	assert.Equal(t, "web1", vm.Name)
	assert.Equal(t, "running", vm.QmpStatus)
}

// writeRawStatus answers with a custom reason phrase the way pveproxy does,
// net/http only writes the standard ones.
func writeRawStatus(t *testing.T, w http.ResponseWriter, statusLine, body string) {
	conn, buf, err := w.(http.Hijacker).Hijack()
	if err != nil {
		t.Errorf("hijack: %v", err)
		return
	}
	defer conn.Close()
	fmt.Fprintf(buf, "HTTP/1.1 %s\r\nContent-Type: application/json\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s", statusLine, len(body), body)
	_ = buf.Flush()
}

func TestGetVmDoesNotExist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRawStatus(t, w, "500 Configuration file 'nodes/pve/qemu-server/999.conf' does not exist", `{"data":null}`)
	}))
	defer server.Close()

	vm, diags := GetVm(context.Background(), testHostConfig(server.URL), 999)

	assert.False(t, diags.HasError())
	assert.Nil(t, vm)
}

func TestGetVmDoesNotExistInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"data":null,"message":"Configuration file 'nodes/pve/qemu-server/999.conf' does not exist\n"}`))
	}))
	defer server.Close()

	vm, diags := GetVm(context.Background(), testHostConfig(server.URL), 999)

	assert.False(t, diags.HasError())
	assert.Nil(t, vm)
}

func TestGetVmServerErrorIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRawStatus(t, w, "500 cluster not ready - no quorum?", `{"data":null}`)
	}))
	defer server.Close()

	vm, diags := GetVm(context.Background(), testHostConfig(server.URL), 100)

	assert.True(t, diags.HasError())
	assert.Nil(t, vm)
}

func TestGetVmNotFoundIsAnError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, diags := GetVm(context.Background(), testHostConfig(server.URL), 999)

	assert.True(t, diags.HasError())
}

func TestGetVmInvalidId(t *testing.T) {
	_, diags := GetVm(context.Background(), testHostConfig("https://pve.local"), 0)
	assert.True(t, diags.HasError())
}
