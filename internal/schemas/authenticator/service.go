package authenticator

import (
	"context"
	"regexp"

	"terraform-provider-pve/internal/helpers"
	"terraform-provider-pve/internal/models"

	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pkg/errors"
)

// The user part may itself contain '@' (directory users such as
// john.doe@corp.example@ad), the realm starts at the last '@' before '!'.
var tokenIdRegex = regexp.MustCompile(`^[^\s:/]+@[A-Za-z][A-Za-z0-9._-]+![A-Za-z][A-Za-z0-9._-]+$`)

// ValidTokenId reports whether id has the user@realm!token shape.
func ValidTokenId(id string) bool {
	return tokenIdRegex.MatchString(id)
}

// GetAuthenticator resolves the API token for a call. A token set on the data
// source wins over the provider level one.
func GetAuthenticator(ctx context.Context, provider *models.PveProviderModel, authenticator *Authentication) (*helpers.HttpCallerAuth, error) {
	var auth helpers.HttpCallerAuth
	if authenticator != nil && authenticator.ApiTokenId.ValueString() != "" {
		tflog.Debug(ctx, "Using data source api token "+authenticator.ApiTokenId.ValueString())
		auth = helpers.HttpCallerAuth{
			ApiTokenId:     authenticator.ApiTokenId.ValueString(),
			ApiTokenSecret: authenticator.ApiTokenSecret.ValueString(),
		}
	} else if provider != nil {
		tflog.Debug(ctx, "Authenticator is nil, using provider api token")
		auth = helpers.HttpCallerAuth{
			ApiTokenId:     provider.ApiTokenId.ValueString(),
			ApiTokenSecret: provider.ApiTokenSecret.ValueString(),
		}
	}

	if auth.ApiTokenId == "" || auth.ApiTokenSecret == "" {
		return nil, errors.New("api token id and secret are required")
	}
	if !ValidTokenId(auth.ApiTokenId) {
		return nil, errors.Errorf("api token id %q is not in the user@realm!token form", auth.ApiTokenId)
	}

	return &auth, nil
}
