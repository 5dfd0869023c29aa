// Command pve-list-vms prints the virtual machines of a Proxmox VE node, one
// `<vmid> - <name> (<status>)` line each.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"terraform-provider-pve/internal/config"
	"terraform-provider-pve/internal/schemas/filter"
	"terraform-provider-pve/internal/telemetry"
	"terraform-provider-pve/internal/vmlister"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/hashicorp/terraform-plugin-log/tflogtest"
)

var version = "dev"

const (
	exitOk          = 0
	exitConfigError = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pve-list-vms", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	envFile := fs.String("env-file", "", "dotenv file to load, ./.env is used when present")
	verbose := fs.Bool("verbose", false, "Write JSON log lines to stderr")
	listNodes := fs.Bool("nodes", false, "List the cluster nodes instead of the virtual machines")
	vmid := fs.Int("vmid", 0, "Print the current status of a single virtual machine")
	showVersion := fs.Bool("version", false, "Print the version and exit")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return exitConfigError
	}

	if *showVersion {
		fmt.Fprintf(stdout, "pve-list-vms version %s\n", version)
		return exitOk
	}

	if *verbose {
		// tflog needs a root logger in the context to emit anything
		ctx = tflogtest.RootLogger(ctx, stderr)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfigError
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfigError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfigError
	}

	vmFilter, err := filter.Parse(cfg.Filter)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfigError
	}

	telemetry.Version = version
	defer telemetry.Shutdown()

	if *listNodes || *vmid != 0 {
		if cfg.Source != config.SourceApi {
			fmt.Fprintln(stderr, "configuration error: -nodes and -vmid need the api source")
			return exitConfigError
		}
	}

	if *vmid != 0 {
		telemetry.Track(ctx, telemetry.NewEvent(telemetry.ActionGetVm, telemetry.ModeCli, cfg.ApiTokenId, nil))
		printVm(ctx, cfg, *vmid, stdout)
		return exitOk
	}

	if *listNodes {
		telemetry.Track(ctx, telemetry.NewEvent(telemetry.ActionListNodes, telemetry.ModeCli, cfg.ApiTokenId, nil))
		printNodes(ctx, cfg, stdout)
		return exitOk
	}

	source, err := newSource(cfg, vmFilter)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitConfigError
	}

	telemetry.Track(ctx, telemetry.NewEvent(telemetry.ActionListVms, telemetry.ModeCli, cfg.ApiTokenId, map[string]interface{}{
		"source": string(cfg.Source),
	}))

	vms := vmlister.ListVms(ctx, source, stdout)
	tflog.Debug(ctx, fmt.Sprintf("pve-list-vms returned %d machines", len(vms)))

	return exitOk
}
