package main

import (
	"context"
	"fmt"
	"io"

	"terraform-provider-pve/internal/apiclient"
	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/config"
	"terraform-provider-pve/internal/constants"
	"terraform-provider-pve/internal/localclient"
	"terraform-provider-pve/internal/schemas/authenticator"
	"terraform-provider-pve/internal/schemas/filter"
	"terraform-provider-pve/internal/ssh"
	"terraform-provider-pve/internal/vmlister"

	"github.com/pkg/errors"
)

func hostConfig(cfg *config.Config) (apiclient.HostConfig, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return apiclient.HostConfig{}, err
	}

	return apiclient.HostConfig{
		Host:                 cfg.Endpoint,
		Node:                 cfg.Node,
		DisableTlsValidation: cfg.Insecure,
		Timeout:              timeout,
		Authorization:        authenticator.NewAuthentication(cfg.ApiTokenId, cfg.ApiTokenSecret),
	}, nil
}

func newSource(cfg *config.Config, vmFilter *filter.Filter) (vmlister.Source, error) {
	switch cfg.Source {
	case config.SourceApi:
		hc, err := hostConfig(cfg)
		if err != nil {
			return nil, err
		}
		return vmlister.NewApiSource(hc, vmFilter), nil
	case config.SourceLocal:
		return vmlister.NewCommandSource(localclient.NewLocalClient(), vmFilter), nil
	case config.SourceSsh:
		client, err := ssh.NewSshClient(cfg.Ssh.Host, cfg.Ssh.Port, ssh.SshAuthorization{
			User:                  cfg.Ssh.User,
			Password:              cfg.Ssh.Password,
			KeyFile:               cfg.Ssh.KeyFile,
			PrivateKey:            cfg.Ssh.PrivateKey,
			KnownHostsFile:        cfg.Ssh.KnownHostsFile,
			InsecureIgnoreHostKey: cfg.Ssh.Insecure,
		})
		if err != nil {
			return nil, err
		}
		return vmlister.NewCommandSource(client, vmFilter), nil
	}

	return nil, errors.Errorf("unknown source %q", cfg.Source)
}

// printNodes prints one `<node> (<status>)` line per node, or the same kind
// of diagnostic line the vm listing prints.
func printNodes(ctx context.Context, cfg *config.Config, out io.Writer) {
	hc, err := hostConfig(cfg)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", constants.ErrorListNodesPrefix, err)
		return
	}

	version, diags := apiclient.GetVersion(ctx, hc)
	if !diags.HasError() && version != nil {
		fmt.Fprintf(out, "Proxmox VE %s\n", version.Version)
	}

	nodes, diags := apiclient.GetNodes(ctx, hc)
	if diags.HasError() {
		for _, d := range diags.Errors() {
			fmt.Fprintf(out, "%s %s\n", constants.ErrorListNodesPrefix, d.Detail())
		}
		return
	}

	for _, n := range nodes {
		fmt.Fprintf(out, "%s (%s)\n", n.Node, n.Status)
	}
}

// printVm prints the current status of one guest, with the qmp status and
// lock when the node reports them.
func printVm(ctx context.Context, cfg *config.Config, vmid int, out io.Writer) {
	hc, err := hostConfig(cfg)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n", constants.ErrorListPrefix, err)
		return
	}

	vm, diags := apiclient.GetVm(ctx, hc, vmid)
	if diags.HasError() {
		for _, d := range diags.Errors() {
			fmt.Fprintf(out, "%s %s\n", constants.ErrorListPrefix, d.Detail())
		}
		return
	}
	if vm == nil {
		fmt.Fprintf(out, "%s vm %d not found on node %s\n", constants.ErrorListPrefix, vmid, cfg.Node)
		return
	}

	line := apimodels.VirtualMachine{VMID: vm.VMID, Name: vm.Name, Status: vm.Status}.String()
	if vm.QmpStatus != "" && vm.QmpStatus != vm.Status {
		line += " qmp=" + vm.QmpStatus
	}
	if vm.Lock != "" {
		line += " lock=" + vm.Lock
	}
	fmt.Fprintln(out, line)
}
