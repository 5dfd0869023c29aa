package apiclient

import (
	"time"

	"terraform-provider-pve/internal/models"
	"terraform-provider-pve/internal/schemas/authenticator"
)

type HostConfig struct {
	Host                 string                        `json:"host"`
	Node                 string                        `json:"node"`
	DisableTlsValidation bool                          `json:"disable_tls_validation"`
	Timeout              time.Duration                 `json:"timeout"`
	Provider             *models.PveProviderModel      `json:"-"`
	Authorization        *authenticator.Authentication `json:"authorization"`
}
