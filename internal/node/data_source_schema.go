package node

import (
	"context"

	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/hashicorp/terraform-plugin-framework-timeouts/datasource/timeouts"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
)

func nodesDataSourceSchema(ctx context.Context) schema.Schema {
	return schema.Schema{
		MarkdownDescription: "Lists the nodes of the Proxmox VE cluster behind the endpoint",
		Blocks: map[string]schema.Block{
			authenticator.SchemaName: authenticator.SchemaBlock,
		},
		Attributes: map[string]schema.Attribute{
			"timeouts": timeouts.Attributes(ctx),
			"version": schema.StringAttribute{
				MarkdownDescription: "Proxmox VE version of the endpoint",
				Computed:            true,
			},
			"nodes": schema.ListNestedAttribute{
				Computed: true,
				NestedObject: schema.NestedAttributeObject{
					Attributes: map[string]schema.Attribute{
						"name": schema.StringAttribute{
							MarkdownDescription: "The node name",
							Computed:            true,
						},
						"status": schema.StringAttribute{
							MarkdownDescription: "The node status, online or offline",
							Computed:            true,
						},
					},
				},
			},
		},
	}
}
