package authenticator

import (
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var SchemaName = "authenticator"
var SchemaBlock = schema.SingleNestedBlock{
	MarkdownDescription: "API token overriding the provider credentials for this data source",

	Attributes: map[string]schema.Attribute{
		"api_token_id": schema.StringAttribute{
			MarkdownDescription: "API token id, in the `user@realm!token` form",
			Optional:            true,
			Validators: []validator.String{
				stringvalidator.RegexMatches(tokenIdRegex, "must be in the user@realm!token form"),
				stringvalidator.AlsoRequires(path.Expressions{
					path.MatchRelative().AtParent().AtName("api_token_secret"),
				}...),
			},
		},
		"api_token_secret": schema.StringAttribute{
			MarkdownDescription: "API token secret",
			Optional:            true,
			Sensitive:           true,
			Validators: []validator.String{
				stringvalidator.AlsoRequires(path.Expressions{
					path.MatchRelative().AtParent().AtName("api_token_id"),
				}...),
			},
		},
	},
}
