package models

import (
	"terraform-provider-pve/internal/apiclient/apimodels"
	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/schemas/authenticator"
	"terraform-provider-pve/internal/schemas/filter"

	"github.com/hashicorp/terraform-plugin-framework-timeouts/datasource/timeouts"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// VirtualMachinesDataSourceModel represents the data source schema for the pve_vms data source.
type VirtualMachinesDataSourceModel struct {
	Authenticator *authenticator.Authentication `tfsdk:"authenticator"`
	Node          types.String                  `tfsdk:"node"`
	Filter        *filter.Filter                `tfsdk:"filter"`
	Timeouts      timeouts.Value                `tfsdk:"timeouts"`
	Machines      []VirtualMachineModel         `tfsdk:"machines"`
}

// VirtualMachineModel represents a virtual machine model with its properties.
type VirtualMachineModel struct {
	VMID        types.Int64    `tfsdk:"vmid"`          // The numeric identifier of the guest.
	Name        types.String   `tfsdk:"name"`          // The configured name of the guest.
	Status      types.String   `tfsdk:"status"`        // The status reported by the node, e.g. running or stopped.
	CPUs        types.Int64    `tfsdk:"cpus"`          // The number of virtual cpus.
	MaxMemoryMb types.Float64  `tfsdk:"max_memory_mb"` // The configured memory in megabytes.
	MaxDiskGb   types.Float64  `tfsdk:"max_disk_gb"`   // The boot disk size in gigabytes.
	Uptime      types.Int64    `tfsdk:"uptime"`        // Seconds since the guest started.
	Tags        []types.String `tfsdk:"tags"`          // The tags of the guest.
}

func NewVirtualMachineModel(vm apimodels.VirtualMachine) VirtualMachineModel {
	tags := make([]types.String, 0)
	for _, tag := range vm.TagList() {
		tags = append(tags, types.StringValue(tag))
	}

	return VirtualMachineModel{
		VMID:        types.Int64Value(int64(vm.VMID)),
		Name:        types.StringValue(vm.Name),
		Status:      types.StringValue(vm.Status),
		CPUs:        types.Int64Value(int64(vm.CPUs)),
		MaxMemoryMb: types.Float64Value(helpers.ConvertByteToMegabyte(float64(vm.MaxMem))),
		MaxDiskGb:   types.Float64Value(helpers.ConvertByteToGigabyte(float64(vm.MaxDisk))),
		Uptime:      types.Int64Value(vm.Uptime),
		Tags:        tags,
	}
}
