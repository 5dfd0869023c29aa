package clientmodels

// APIErrorResponse is the body Proxmox VE sends along with a non 2xx status.
// Parameter validation failures come back as a field to message map.
type APIErrorResponse struct {
	Code    int64             `json:"-"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
