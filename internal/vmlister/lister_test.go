package vmlister

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"terraform-provider-pve/internal/apiclient"
	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/hashicorp/terraform-plugin-log/tflogtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiSource(url string) *ApiSource {
	return NewApiSource(apiclient.HostConfig{
		Host:          url,
		Node:          "proxmox",
		Authorization: authenticator.NewAuthentication("root@pam!ProxmoxWebUI", "secret"),
	}, nil)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func lines(out *bytes.Buffer) []string {
	trimmed := strings.TrimRight(out.String(), "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func TestListPrintsOneLinePerVm(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[{"vmid":100,"name":"web1","status":"running"},{"vmid":101,"name":"db1","status":"stopped"}]}`)
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(server.URL), &out)

	require.Len(t, vms, 2)
	assert.Equal(t, 100, vms[0].VMID)
	assert.Equal(t, 101, vms[1].VMID)
	assert.Equal(t, []string{"100 - web1 (running)", "101 - db1 (stopped)"}, lines(&out))
}

func TestListUnauthorizedPrintsOneDiagnostic(t *testing.T) {
	server := serve(t, http.StatusUnauthorized, "")
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(server.URL), &out)

	assert.NotNil(t, vms)
	assert.Empty(t, vms)
	got := lines(&out)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "Error retrieving VMs: "), got[0])
	assert.Contains(t, got[0], "401")
}

func TestListServerErrorPrintsOneDiagnostic(t *testing.T) {
	server := serve(t, http.StatusInternalServerError, `{"data":null}`)
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(server.URL), &out)

	assert.Empty(t, vms)
	assert.Len(t, lines(&out), 1)
}

func TestListConnectionRefusedPrintsOneDiagnostic(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(url), &out)

	assert.NotNil(t, vms)
	assert.Empty(t, vms)
	got := lines(&out)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "Error retrieving VMs: "))
}

func TestListEmptyDataPrintsNothing(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[]}`)
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(server.URL), &out)

	assert.NotNil(t, vms)
	assert.Empty(t, vms)
	assert.Empty(t, out.String())
}

func TestListMissingDataIsAFailure(t *testing.T) {
	server := serve(t, http.StatusOK, `{"errors":"nope"}`)
	var out bytes.Buffer

	vms := ListVms(context.Background(), apiSource(server.URL), &out)

	assert.Empty(t, vms)
	got := lines(&out)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "no data field")
}

func TestListSkipsAndLogsMalformedRecords(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[{"vmid":100,"name":"web1","status":"running"},{"name":"ghost","status":"running"}]}`)
	var out, logs bytes.Buffer
	ctx := tflogtest.RootLogger(context.Background(), &logs)

	vms := ListVms(ctx, apiSource(server.URL), &out)

	require.Len(t, vms, 1)
	assert.Equal(t, []string{"100 - web1 (running)"}, lines(&out))

	entries, err := tflogtest.MultilineJSONDecode(&logs)
	require.NoError(t, err)
	found := false
	for _, entry := range entries {
		if entry["@message"] == "Skipping malformed vm record" {
			found = true
			assert.Equal(t, "warn", entry["@level"])
			assert.Equal(t, float64(1), entry["index"])
			assert.NotEmpty(t, entry["request_id"])
		}
	}
	assert.True(t, found, "expected a warning for the record without vmid")
}

type fakeSource struct {
	vms []apimodels.VirtualMachine
	err error
}

func (f fakeSource) FetchVms(_ context.Context) ([]apimodels.VirtualMachine, error) {
	return f.vms, f.err
}

func TestListFlattensMultilineErrors(t *testing.T) {
	var out bytes.Buffer

	vms := New(fakeSource{err: errors.New("first line\nsecond line")}, &out).List(context.Background())

	assert.Empty(t, vms)
	assert.Equal(t, "Error retrieving VMs: first line second line\n", out.String())
}

func TestListNilResultBecomesEmpty(t *testing.T) {
	var out bytes.Buffer

	vms := New(fakeSource{}, &out).List(context.Background())

	assert.NotNil(t, vms)
	assert.Empty(t, out.String())
}

func TestListWithoutSource(t *testing.T) {
	var out bytes.Buffer

	vms := New(nil, &out).List(context.Background())

	assert.Empty(t, vms)
	assert.Equal(t, "Error retrieving VMs: no vm source configured\n", out.String())
}

func TestListDirectoryUserTokenReachesServer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[{"vmid":100,"name":"web1","status":"running"},{"vmid":101,"name":"db1","status":"stopped"}]}`))
	}))
	defer server.Close()

	source := NewApiSource(apiclient.HostConfig{
		Host:          server.URL,
		Node:          "pve",
		Authorization: authenticator.NewAuthentication("john.doe@corp.example@ad!lister", "secret"),
	}, nil)
	var out bytes.Buffer

	vms := ListVms(context.Background(), source, &out)

	assert.Equal(t, "PVEAPIToken=john.doe@corp.example@ad!lister=secret", gotAuth)
	assert.Len(t, vms, 2)
	assert.Equal(t, []string{"100 - web1 (running)", "101 - db1 (stopped)"}, lines(&out))
}
