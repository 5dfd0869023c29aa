package models

import "github.com/hashicorp/terraform-plugin-framework/types"

type PveProviderModel struct {
	Endpoint       types.String `tfsdk:"endpoint"`
	ApiTokenId     types.String `tfsdk:"api_token_id"`
	ApiTokenSecret types.String `tfsdk:"api_token_secret"`
	Insecure       types.Bool   `tfsdk:"insecure"`
}
