package provider

import (
	"context"
	"os"
	"strconv"

	"terraform-provider-pve/internal/constants"
	"terraform-provider-pve/internal/models"
	"terraform-provider-pve/internal/node"
	"terraform-provider-pve/internal/telemetry"
	"terraform-provider-pve/internal/virtualmachine"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure the implementation satisfies the expected interfaces.
var (
	_ provider.Provider = &PveProvider{}
)

// New is a helper function to simplify provider server and testing implementation.
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &PveProvider{
			version: version,
		}
	}
}

// PveProvider is the provider implementation.
type PveProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// Metadata returns the provider type name.
func (p *PveProvider) Metadata(_ context.Context, _ provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = constants.ProviderTypeName
	resp.Version = p.version
}

// Schema defines the provider-level schema for configuration data.
func (p *PveProvider) Schema(_ context.Context, _ provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Read only access to the virtual machines of a Proxmox VE cluster",
		Attributes: map[string]schema.Attribute{
			"endpoint": schema.StringAttribute{
				MarkdownDescription: "Proxmox VE endpoint, falls back to `" + constants.ENV_ENDPOINT + "`",
				Optional:            true,
			},
			"api_token_id": schema.StringAttribute{
				MarkdownDescription: "API token id in the `user@realm!token` form, falls back to `" + constants.ENV_API_TOKEN_ID + "`",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.AlsoRequires(path.MatchRoot("api_token_secret")),
				},
			},
			"api_token_secret": schema.StringAttribute{
				MarkdownDescription: "API token secret, falls back to `" + constants.ENV_API_TOKEN_SECRET + "`",
				Optional:            true,
				Sensitive:           true,
			},
			"insecure": schema.BoolAttribute{
				MarkdownDescription: "Skip the TLS certificate verification, falls back to `" + constants.ENV_INSECURE + "`",
				Optional:            true,
			},
		},
	}
}

func (p *PveProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var config models.PveProviderModel
	diags := req.Config.Get(ctx, &config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	data := models.PveProviderModel{
		Endpoint:       stringOrEnv(config.Endpoint, constants.ENV_ENDPOINT),
		ApiTokenId:     stringOrEnv(config.ApiTokenId, constants.ENV_API_TOKEN_ID),
		ApiTokenSecret: stringOrEnv(config.ApiTokenSecret, constants.ENV_API_TOKEN_SECRET),
		Insecure:       boolOrEnv(config.Insecure, constants.ENV_INSECURE),
	}

	if data.Endpoint.ValueString() == "" {
		resp.Diagnostics.AddAttributeError(
			path.Root("endpoint"),
			"The endpoint is required",
			"Set the endpoint attribute or the "+constants.ENV_ENDPOINT+" environment variable",
		)
	}
	if data.ApiTokenId.ValueString() == "" || data.ApiTokenSecret.ValueString() == "" {
		resp.Diagnostics.AddAttributeError(
			path.Root("api_token_id"),
			"The api token is required",
			"Set api_token_id and api_token_secret or the "+constants.ENV_API_TOKEN_ID+" and "+constants.ENV_API_TOKEN_SECRET+" environment variables",
		)
	}

	if resp.Diagnostics.HasError() {
		return
	}

	telemetry.Version = p.version
	tflog.Info(ctx, "Configured pve provider for "+data.Endpoint.ValueString())

	resp.DataSourceData = &data
	resp.ResourceData = &data
}

// DataSources defines the data sources implemented in the provider.
func (p *PveProvider) DataSources(_ context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		virtualmachine.NewVirtualMachinesDataSource,
		node.NewNodesDataSource,
	}
}

// Resources defines the resources implemented in the provider.
func (p *PveProvider) Resources(_ context.Context) []func() resource.Resource {
	return []func() resource.Resource{}
}

func stringOrEnv(value types.String, env string) types.String {
	if !value.IsNull() && !value.IsUnknown() && value.ValueString() != "" {
		return value
	}
	return types.StringValue(os.Getenv(env))
}

func boolOrEnv(value types.Bool, env string) types.Bool {
	if !value.IsNull() && !value.IsUnknown() {
		return value
	}
	if b, err := strconv.ParseBool(os.Getenv(env)); err == nil {
		return types.BoolValue(b)
	}
	return types.BoolValue(false)
}
