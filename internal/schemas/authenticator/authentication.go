package authenticator

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-framework/types/basetypes"
)

type Authentication struct {
	ApiTokenId     types.String `tfsdk:"api_token_id"`
	ApiTokenSecret types.String `tfsdk:"api_token_secret"`
}

// NewAuthentication builds the block from plain values, used outside of
// terraform by the command line lister.
func NewAuthentication(tokenId, tokenSecret string) *Authentication {
	return &Authentication{
		ApiTokenId:     types.StringValue(tokenId),
		ApiTokenSecret: types.StringValue(tokenSecret),
	}
}

func (s *Authentication) ElementType(ctx context.Context) attr.Type {
	return basetypes.ObjectType{
		AttrTypes: map[string]attr.Type{
			"api_token_id":     types.StringType,
			"api_token_secret": types.StringType,
		},
	}
}

func (s *Authentication) MapObject(ctx context.Context) (basetypes.ObjectValue, diag.Diagnostics) {
	attributeTypes := make(map[string]attr.Type)
	attributeTypes["api_token_id"] = types.StringType
	attributeTypes["api_token_secret"] = types.StringType

	attrs := map[string]attr.Value{}
	attrs["api_token_id"] = s.ApiTokenId
	attrs["api_token_secret"] = s.ApiTokenSecret

	return types.ObjectValue(attributeTypes, attrs)
}
