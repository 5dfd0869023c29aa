package apimodels

// Response is the envelope Proxmox VE wraps every single object in.
type Response[T any] struct {
	Data T `json:"data"`
}

// ListResponse is the envelope of list endpoints. Data is nil when the key
// is missing or null and empty when the server sent [].
type ListResponse[T any] struct {
	Data []T `json:"data"`
}
