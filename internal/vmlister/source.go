package vmlister

import (
	"context"
	"strings"

	"terraform-provider-pve/internal/apiclient"
	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/interfaces"
	"terraform-provider-pve/internal/qm"
	"terraform-provider-pve/internal/schemas/filter"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/pkg/errors"
)

// Source is where the lister reads the guests of a node from.
type Source interface {
	FetchVms(ctx context.Context) ([]apimodels.VirtualMachine, error)
}

// ApiSource reads the guests from the Proxmox VE REST API.
type ApiSource struct {
	Config apiclient.HostConfig
	Filter *filter.Filter
}

func NewApiSource(config apiclient.HostConfig, vmFilter *filter.Filter) *ApiSource {
	return &ApiSource{
		Config: config,
		Filter: vmFilter,
	}
}

func (s *ApiSource) FetchVms(ctx context.Context) ([]apimodels.VirtualMachine, error) {
	vms, diagnostics := apiclient.GetVms(ctx, s.Config, s.Filter)
	if diagnostics.HasError() {
		return nil, diagnosticsError(diagnostics)
	}
	return vms, nil
}

// CommandSource reads the guests from `qm list` on a local or remote shell.
type CommandSource struct {
	Client interfaces.CommandClient
	Filter *filter.Filter
}

func NewCommandSource(client interfaces.CommandClient, vmFilter *filter.Filter) *CommandSource {
	return &CommandSource{
		Client: client,
		Filter: vmFilter,
	}
}

func (s *CommandSource) FetchVms(ctx context.Context) ([]apimodels.VirtualMachine, error) {
	vms, err := qm.ListVms(ctx, s.Client)
	if err != nil {
		return nil, err
	}
	if s.Filter != nil {
		return s.Filter.Apply(vms)
	}
	return vms, nil
}

func diagnosticsError(diagnostics diag.Diagnostics) error {
	messages := make([]string, 0, diagnostics.ErrorsCount())
	for _, d := range diagnostics.Errors() {
		if d.Detail() != "" {
			messages = append(messages, d.Detail())
		} else {
			messages = append(messages, d.Summary())
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
