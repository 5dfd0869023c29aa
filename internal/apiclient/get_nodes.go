package apiclient

import (
	"context"
	"strconv"

	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/luthermonson/go-proxmox"
)

func newProxmoxClient(ctx context.Context, config HostConfig) (*proxmox.Client, error) {
	auth, err := authenticator.GetAuthenticator(ctx, config.Provider, config.Authorization)
	if err != nil {
		return nil, err
	}

	caller := helpers.NewHttpCaller(ctx, config.DisableTlsValidation).WithTimeout(config.Timeout)
	return proxmox.NewClient(helpers.GetHostApiBaseUrl(config.Host),
		proxmox.WithHTTPClient(caller.HttpClient()),
		proxmox.WithAPIToken(auth.ApiTokenId, auth.ApiTokenSecret),
	), nil
}

// GetNodes lists the cluster nodes the token can see.
func GetNodes(ctx context.Context, config HostConfig) ([]apimodels.Node, diag.Diagnostics) {
	diagnostics := diag.Diagnostics{}

	client, err := newProxmoxClient(ctx, config)
	if err != nil {
		diagnostics.AddError("There was an error getting the authenticator", err.Error())
		return nil, diagnostics
	}

	nodes, err := client.Nodes(ctx)
	if err != nil {
		tflog.Error(ctx, "Error getting nodes: "+err.Error())
		diagnostics.AddError("There was an error getting the nodes", err.Error())
		return nil, diagnostics
	}

	response := make([]apimodels.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		response = append(response, apimodels.Node{
			Node:   n.Node,
			Status: n.Status,
		})
	}

	tflog.Info(ctx, "Got "+strconv.Itoa(len(response))+" nodes")

	return response, diagnostics
}
