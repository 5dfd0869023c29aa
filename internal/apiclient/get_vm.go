package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/clientmodels"
	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// GetVm returns the current status of one guest, nil when it does not exist.
// Proxmox VE answers an unknown vmid with a 500 whose message reads
// "Configuration file 'nodes/<node>/qemu-server/<vmid>.conf' does not exist".
func GetVm(ctx context.Context, config HostConfig, vmid int) (*apimodels.VirtualMachineStatus, diag.Diagnostics) {
	diagnostics := diag.Diagnostics{}
	if vmid <= 0 {
		diagnostics.AddError("There was an error getting the vm", "vmid must be a positive number")
		return nil, diagnostics
	}

	url := fmt.Sprintf("%s/%d/status/current", helpers.GetNodeQemuUrl(config.Host, config.Node), vmid)

	auth, err := authenticator.GetAuthenticator(ctx, config.Provider, config.Authorization)
	if err != nil {
		diagnostics.AddError("There was an error getting the authenticator", err.Error())
		return nil, diagnostics
	}

	var response apimodels.Response[*apimodels.VirtualMachineStatus]
	client := helpers.NewHttpCaller(ctx, config.DisableTlsValidation).WithTimeout(config.Timeout)
	if clientResponse, err := client.GetDataFromClient(url, nil, auth, &response); err != nil {
		if clientResponse != nil && clientResponse.ApiError != nil {
			if vmDoesNotExist(clientResponse.ApiError) {
				tflog.Debug(ctx, fmt.Sprintf("Machine %d does not exist on node %s", vmid, config.Node))
				return nil, diagnostics
			}
			tflog.Error(ctx, fmt.Sprintf("Error getting vm: %v, api message: %s", err, clientResponse.ApiError.Message))
		}
		diagnostics.AddError("There was an error getting the vm", err.Error())
		return nil, diagnostics
	}

	if response.Data == nil {
		return nil, diagnostics
	}

	tflog.Info(ctx, "Got machine "+response.Data.Name)

	return response.Data, diagnostics
}

func vmDoesNotExist(apiError *clientmodels.APIErrorResponse) bool {
	return apiError.Code == http.StatusInternalServerError &&
		strings.Contains(apiError.Message, "Configuration file") &&
		strings.Contains(apiError.Message, "does not exist")
}
