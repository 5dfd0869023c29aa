package virtualmachine

import (
	"context"
	"fmt"
	"time"

	"terraform-provider-pve/internal/apiclient"
	"terraform-provider-pve/internal/models"
	"terraform-provider-pve/internal/telemetry"
	data_models "terraform-provider-pve/internal/virtualmachine/models"
	"terraform-provider-pve/internal/virtualmachine/schemas"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
)

const defaultReadTimeout = 60 * time.Second

var (
	_ datasource.DataSource              = &VirtualMachinesDataSource{}
	_ datasource.DataSourceWithConfigure = &VirtualMachinesDataSource{}
)

func NewVirtualMachinesDataSource() datasource.DataSource {
	return &VirtualMachinesDataSource{}
}

type VirtualMachinesDataSource struct {
	provider *models.PveProviderModel
}

func (d *VirtualMachinesDataSource) Configure(_ context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
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

func (d *VirtualMachinesDataSource) Metadata(_ context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_vms"
}

func (d *VirtualMachinesDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schemas.VirtualMachineDataSourceSchema(ctx)
}

func (d *VirtualMachinesDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data data_models.VirtualMachinesDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if d.provider == nil {
		resp.Diagnostics.AddError("provider is not configured", "The pve provider must be configured before reading pve_vms")
		return
	}

	readTimeout, diags := data.Timeouts.Read(ctx, defaultReadTimeout)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	telemetry.Track(ctx, telemetry.NewEvent(telemetry.ActionListVms, telemetry.ModeDataSource, d.provider.ApiTokenId.ValueString(), map[string]interface{}{"node": data.Node.ValueString()}))

	hostConfig := apiclient.HostConfig{
		Host:                 d.provider.Endpoint.ValueString(),
		Node:                 data.Node.ValueString(),
		DisableTlsValidation: d.provider.Insecure.ValueBool(),
		Timeout:              readTimeout,
		Provider:             d.provider,
		Authorization:        data.Authenticator,
	}

	vms, diag := apiclient.GetVms(ctx, hostConfig, data.Filter)
	if diag.HasError() {
		resp.Diagnostics.Append(diag...)
		return
	}

	data.Machines = make([]data_models.VirtualMachineModel, 0, len(vms))
	for _, machine := range vms {
		data.Machines = append(data.Machines, data_models.NewVirtualMachineModel(machine))
	}

	diags = resp.State.Set(ctx, &data)
	resp.Diagnostics.Append(diags...)
}
