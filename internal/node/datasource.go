package node

import (
	"context"
	"fmt"
	"time"

	"terraform-provider-pve/internal/apiclient"
	"terraform-provider-pve/internal/models"
	"terraform-provider-pve/internal/telemetry"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

var (
	_ datasource.DataSource              = &NodesDataSource{}
	_ datasource.DataSourceWithConfigure = &NodesDataSource{}
)

func NewNodesDataSource() datasource.DataSource {
	return &NodesDataSource{}
}

type NodesDataSource struct {
	provider *models.PveProviderModel
}

func (d *NodesDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	data, ok := req.ProviderData.(*models.PveProviderModel)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *models.PveProviderModel, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.provider = data
}

func (d *NodesDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_nodes"
}

func (d *NodesDataSource) Schema(ctx context.Context, _ datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = nodesDataSourceSchema(ctx)
}

func (d *NodesDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data nodesDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if d.provider == nil {
		resp.Diagnostics.AddError("provider is not configured", "The pve provider must be configured before reading pve_nodes")
		return
	}

	readTimeout, diags := data.Timeouts.Read(ctx, 60*time.Second)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	telemetry.Track(ctx, telemetry.NewEvent(telemetry.ActionListNodes, telemetry.ModeDataSource, d.provider.ApiTokenId.ValueString(), nil))

	hostConfig := apiclient.HostConfig{
		Host:                 d.provider.Endpoint.ValueString(),
		DisableTlsValidation: d.provider.Insecure.ValueBool(),
		Timeout:              readTimeout,
		Provider:             d.provider,
		Authorization:        data.Authenticator,
	}

	version, diag := apiclient.GetVersion(ctx, hostConfig)
	if diag.HasError() {
		resp.Diagnostics.Append(diag...)
		return
	}
	data.Version = types.StringValue(version.Version)

	nodes, diag := apiclient.GetNodes(ctx, hostConfig)
	if diag.HasError() {
		resp.Diagnostics.Append(diag...)
		return
	}

	data.Nodes = make([]nodeModel, 0, len(nodes))
	for _, n := range nodes {
		data.Nodes = append(data.Nodes, nodeModel{
			Name:   types.StringValue(n.Node),
			Status: types.StringValue(n.Status),
		})
	}

	diags = resp.State.Set(ctx, &data)
	resp.Diagnostics.Append(diags...)
}
