package apimodels

type Node struct {
	Node   string `json:"node"`
	Status string `json:"status"`
}

type Version struct {
	Release string `json:"release"`
	Version string `json:"version"`
	RepoID  string `json:"repoid"`
}
