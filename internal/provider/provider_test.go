package provider

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	fwprovider "github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata(t *testing.T) {
	p := New("test")()
	resp := &fwprovider.MetadataResponse{}
	p.Metadata(context.Background(), fwprovider.MetadataRequest{}, resp)

	assert.Equal(t, "pve", resp.TypeName)
	assert.Equal(t, "test", resp.Version)
}

func TestSchema(t *testing.T) {
	p := New("test")()
	resp := &fwprovider.SchemaResponse{}
	p.Schema(context.Background(), fwprovider.SchemaRequest{}, resp)

	require.False(t, resp.Diagnostics.HasError())
	assert.False(t, resp.Schema.ValidateImplementation(context.Background()).HasError())
	assert.Contains(t, resp.Schema.Attributes, "endpoint")
	assert.True(t, resp.Schema.Attributes["api_token_secret"].IsSensitive())
}

func TestDataSources(t *testing.T) {
	p := New("test")()
	factories := p.DataSources(context.Background())
	require.Len(t, factories, 2)

	typeNames := make([]string, 0, len(factories))
	for _, factory := range factories {
		resp := &datasource.MetadataResponse{}
		factory().Metadata(context.Background(), datasource.MetadataRequest{ProviderTypeName: "pve"}, resp)
		typeNames = append(typeNames, resp.TypeName)
	}
	assert.ElementsMatch(t, []string{"pve_vms", "pve_nodes"}, typeNames)
	assert.Empty(t, p.Resources(context.Background()))
}

func TestStringOrEnv(t *testing.T) {
	t.Setenv("PROXMOX_VE_ENDPOINT", "https://env:8006")

	assert.Equal(t, "https://config:8006", stringOrEnv(types.StringValue("https://config:8006"), "PROXMOX_VE_ENDPOINT").ValueString())
	assert.Equal(t, "https://env:8006", stringOrEnv(types.StringNull(), "PROXMOX_VE_ENDPOINT").ValueString())
	assert.Equal(t, "https://env:8006", stringOrEnv(types.StringValue(""), "PROXMOX_VE_ENDPOINT").ValueString())
}

func TestBoolOrEnv(t *testing.T) {
	t.Setenv("PROXMOX_VE_INSECURE", "true")
	assert.True(t, boolOrEnv(types.BoolNull(), "PROXMOX_VE_INSECURE").ValueBool())
	assert.False(t, boolOrEnv(types.BoolValue(false), "PROXMOX_VE_INSECURE").ValueBool())

	t.Setenv("PROXMOX_VE_INSECURE", "nope")
	assert.False(t, boolOrEnv(types.BoolNull(), "PROXMOX_VE_INSECURE").ValueBool())
}
