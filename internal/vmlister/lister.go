// Package vmlister prints the virtual machines of a Proxmox VE node, one
// `<vmid> - <name> (<status>)` line each.
//
// The lister never returns an error: a failed fetch prints a single
// diagnostic line and yields an empty list.
package vmlister

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/constants"

	"github.com/google/uuid"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
)

type Lister struct {
	source Source
	out    io.Writer
}

// New returns a lister reading from source and printing to out, os.Stdout
// when out is nil.
func New(source Source, out io.Writer) *Lister {
	if out == nil {
		out = os.Stdout
	}
	return &Lister{
		source: source,
		out:    out,
	}
}

// List fetches, prints and returns the machines. The result is never nil.
func (l *Lister) List(ctx context.Context) []apimodels.VirtualMachine {
	ctx = tflog.SetField(ctx, "request_id", uuid.NewString())

	if l.source == nil {
		l.printError(ctx, errors.New("no vm source configured"))
		return []apimodels.VirtualMachine{}
	}

	vms, err := l.source.FetchVms(ctx)
	if err != nil {
		l.printError(ctx, err)
		return []apimodels.VirtualMachine{}
	}
	if vms == nil {
		vms = []apimodels.VirtualMachine{}
	}

	for _, vm := range vms {
		fmt.Fprintln(l.out, vm.String())
	}

	tflog.Debug(ctx, "Listed "+strconv.Itoa(len(vms))+" machines")
	return vms
}

func (l *Lister) printError(ctx context.Context, err error) {
	tflog.Error(ctx, "Error listing vms: "+err.Error())
	message := strings.Join(strings.Fields(err.Error()), " ")
	fmt.Fprintf(l.out, "%s %s\n", constants.ErrorListPrefix, message)
}

// ListVms is a one shot helper around New and List.
func ListVms(ctx context.Context, source Source, out io.Writer) []apimodels.VirtualMachine {
	return New(source, out).List(ctx)
}
