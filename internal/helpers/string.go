package helpers

import (
	"math"
	"net/url"
	"strings"

	"terraform-provider-pve/internal/constants"
)

// GetHostUrl normalizes a user supplied endpoint. A bare host gets the https
// scheme and the Proxmox VE API port, an explicit URL is kept as given so a
// reverse proxied endpoint on 443 keeps working.
func GetHostUrl(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}

	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = strings.TrimSuffix(host, "/")
		if !strings.Contains(host, ":") {
			host = host + ":" + constants.DefaultApiPort
		}
		host = "https://" + host
	}

	host = strings.TrimSuffix(host, "/")
	return strings.TrimSuffix(host, constants.API_PREFIX)
}

func GetHostApiBaseUrl(host string) string {
	return strings.TrimSuffix(GetHostUrl(host)+constants.API_PREFIX, "/")
}

// GetNodeQemuUrl returns the url listing the QEMU guests of a node.
func GetNodeQemuUrl(host, node string) string {
	return GetHostApiBaseUrl(host) + "/nodes/" + url.PathEscape(node) + "/qemu"
}

func ConvertByteToGigabyte(bytes float64) float64 {
	gb := float64(bytes) / 1024 / 1024 / 1024
	return math.Round(gb*100) / 100
}

func ConvertByteToMegabyte(bytes float64) float64 {
	mb := float64(bytes) / 1024 / 1024
	return math.Round(mb*100) / 100
}
