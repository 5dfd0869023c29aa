package node

import (
	"terraform-provider-pve/internal/schemas/authenticator"

	"github.com/hashicorp/terraform-plugin-framework-timeouts/datasource/timeouts"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

type nodesDataSourceModel struct {
	Authenticator *authenticator.Authentication `tfsdk:"authenticator"`
	Timeouts      timeouts.Value                `tfsdk:"timeouts"`
	Version       types.String                  `tfsdk:"version"`
	Nodes         []nodeModel                   `tfsdk:"nodes"`
}

type nodeModel struct {
	Name   types.String `tfsdk:"name"`
	Status types.String `tfsdk:"status"`
}
