// Package qm reads the guests of a node from the qm command line tool, for
// hosts where the API is not reachable but a shell is.
package qm

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/constants"
	"terraform-provider-pve/internal/interfaces"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
)

var listHeader = []string{"VMID", "NAME", "STATUS"}

// ListVms runs `qm list --full` through client and parses its table.
func ListVms(ctx context.Context, client interfaces.CommandClient) ([]apimodels.VirtualMachine, error) {
	if client == nil {
		return nil, errors.New("command client cannot be nil")
	}

	tflog.Debug(ctx, "Listing guests with qm as "+client.Username())
	output, err := client.RunCommand(ctx, constants.QmExecutable, []string{"list", "--full"})
	if err != nil {
		return nil, errors.Wrap(err, "error running qm list")
	}

	return ParseList(ctx, output)
}

// ParseList parses the table printed by `qm list`. The header is required,
// rows that cannot be parsed are skipped.
func ParseList(ctx context.Context, output string) ([]apimodels.VirtualMachine, error) {
	vms := make([]apimodels.VirtualMachine, 0)
	scanner := bufio.NewScanner(strings.NewReader(output))
	headerFound := false
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if !headerFound {
			if !isHeader(fields) {
				return nil, errors.Errorf("unexpected qm list header %q", line)
			}
			headerFound = true
			continue
		}

		vm, err := parseRow(fields)
		if err != nil {
			tflog.Warn(ctx, "Skipping malformed qm list row", map[string]interface{}{
				"line":  lineNumber,
				"error": err.Error(),
			})
			continue
		}
		vms = append(vms, vm)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading qm list output")
	}

	// an empty node prints nothing at all, not even the header
	return vms, nil
}

func isHeader(fields []string) bool {
	if len(fields) < len(listHeader) {
		return false
	}
	for i, name := range listHeader {
		if !strings.EqualFold(fields[i], name) {
			return false
		}
	}
	return true
}

// parseRow reads VMID NAME STATUS MEM(MB) BOOTDISK(GB) PID, the trailing
// columns are optional.
func parseRow(fields []string) (apimodels.VirtualMachine, error) {
	var vm apimodels.VirtualMachine
	if len(fields) < 3 {
		return vm, errors.Errorf("expected at least 3 columns, got %d", len(fields))
	}

	vmid, err := strconv.Atoi(fields[0])
	if err != nil {
		return vm, errors.Wrapf(err, "invalid vmid %q", fields[0])
	}

	vm.VMID = vmid
	vm.Name = fields[1]
	vm.Status = fields[2]

	if len(fields) > 3 {
		if mem, err := strconv.ParseInt(fields[3], 10, 64); err == nil {
			vm.MaxMem = mem * 1024 * 1024
		}
	}
	if len(fields) > 4 {
		if disk, err := strconv.ParseFloat(fields[4], 64); err == nil {
			vm.MaxDisk = int64(disk * 1024 * 1024 * 1024)
		}
	}
	if len(fields) > 5 {
		if pid, err := strconv.Atoi(fields[5]); err == nil {
			vm.PID = pid
		}
	}

	return vm, nil
}
