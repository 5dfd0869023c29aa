package apiclient

import (
	"context"

	"terraform-provider-pve/internal/apiclient/apimodels"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// GetVersion returns the Proxmox VE version of the endpoint.
func GetVersion(ctx context.Context, config HostConfig) (*apimodels.Version, diag.Diagnostics) {
	diagnostics := diag.Diagnostics{}

	client, err := newProxmoxClient(ctx, config)
	if err != nil {
		diagnostics.AddError("There was an error getting the authenticator", err.Error())
		return nil, diagnostics
	}

	version, err := client.Version(ctx)
	if err != nil {
		tflog.Error(ctx, "Error getting version: "+err.Error())
		diagnostics.AddError("There was an error getting the version", err.Error())
		return nil, diagnostics
	}

	return &apimodels.Version{
		Release: version.Release,
		Version: version.Version,
		RepoID:  version.RepoID,
	}, diagnostics
}
