package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/schemas/authenticator"
	"terraform-provider-pve/internal/schemas/filter"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// GetVms lists the QEMU guests of config.Node in the order the server
// returned them. Records without vmid, name or status are skipped.
func GetVms(ctx context.Context, config HostConfig, vmFilter *filter.Filter) ([]apimodels.VirtualMachine, diag.Diagnostics) {
	diagnostic := diag.Diagnostics{}
	if config.Host == "" {
		diagnostic.AddError("There was an error getting the vms", "host cannot be empty")
		return nil, diagnostic
	}
	if config.Node == "" {
		diagnostic.AddError("There was an error getting the vms", "node cannot be empty")
		return nil, diagnostic
	}

	url := helpers.GetNodeQemuUrl(config.Host, config.Node)

	auth, err := authenticator.GetAuthenticator(ctx, config.Provider, config.Authorization)
	if err != nil {
		diagnostic.AddError("There was an error getting the authenticator", err.Error())
		return nil, diagnostic
	}

	var response apimodels.ListResponse[json.RawMessage]
	client := helpers.NewHttpCaller(ctx, config.DisableTlsValidation).WithTimeout(config.Timeout)
	if clientResponse, err := client.GetDataFromClient(url, nil, auth, &response); err != nil {
		if clientResponse != nil && clientResponse.ApiError != nil {
			tflog.Error(ctx, fmt.Sprintf("Error getting vms: %v, api message: %s", err, clientResponse.ApiError.Message))
		}
		diagnostic.AddError("There was an error getting the vms", err.Error())
		return nil, diagnostic
	}

	if response.Data == nil {
		diagnostic.AddError("There was an error getting the vms", fmt.Sprintf("response from %s has no data field", url))
		return nil, diagnostic
	}

	vms := make([]apimodels.VirtualMachine, 0, len(response.Data))
	for i, raw := range response.Data {
		vm, err := apimodels.DecodeVirtualMachine(raw)
		if err != nil {
			tflog.Warn(ctx, "Skipping malformed vm record", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		vms = append(vms, vm)
	}

	if vmFilter != nil {
		filtered, err := vmFilter.Apply(vms)
		if err != nil {
			diagnostic.AddError("There was an error filtering the vms", err.Error())
			return nil, diagnostic
		}
		vms = filtered
	}

	tflog.Info(ctx, "Got "+strconv.Itoa(len(vms))+" machines on node "+config.Node)

	return vms, diagnostic
}
