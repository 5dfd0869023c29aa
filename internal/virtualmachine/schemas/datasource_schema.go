package schemas

import (
	"context"

	"terraform-provider-pve/internal/schemas/authenticator"
	"terraform-provider-pve/internal/schemas/filter"

	"github.com/hashicorp/terraform-plugin-framework-timeouts/datasource/timeouts"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func VirtualMachineDataSourceSchema(ctx context.Context) schema.Schema {
	return schema.Schema{
		MarkdownDescription: "Lists the QEMU virtual machines of a Proxmox VE node",
		Blocks: map[string]schema.Block{
			authenticator.SchemaName: authenticator.SchemaBlock,
			filter.SchemaName:        filter.SchemaBlock,
		},
		Attributes: map[string]schema.Attribute{
			"node": schema.StringAttribute{
				MarkdownDescription: "Name of the node owning the virtual machines",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"timeouts": timeouts.Attributes(ctx),
			"machines": schema.ListNestedAttribute{
				Computed: true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"vmid": schema.Int64Attribute{
							MarkdownDescription: "The numeric identifier of the virtual machine",
							Computed:            true,
						},
						"name": schema.StringAttribute{
							MarkdownDescription: "The name of the virtual machine",
							Computed:            true,
						},
						"status": schema.StringAttribute{
							MarkdownDescription: "The status of the virtual machine",
							Computed:            true,
						},
						"cpus": schema.Int64Attribute{
							MarkdownDescription: "The number of virtual cpus",
							Computed:            true,
						},
						"max_memory_mb": schema.Float64Attribute{
							MarkdownDescription: "The configured memory in megabytes",
							Computed:            true,
						},
						"max_disk_gb": schema.Float64Attribute{
							MarkdownDescription: "The boot disk size in gigabytes",
							Computed:            true,
						},
						"uptime": schema.Int64Attribute{
							MarkdownDescription: "Seconds since the virtual machine started",
							Computed:            true,
						},
						"tags": schema.ListAttribute{
							MarkdownDescription: "The tags of the virtual machine",
							ElementType:         types.StringType,
							Computed:            true,
						},
					},
				},
			},
		},
	}
}
