package inbound

type HelloResponse struct {
	LoginURL string `json:"login_url"`
	Version  string `json:"version"`
}

type IndexResponse struct {
	Login string            `json:"login"`
	Links map[string]string `json:"links"`
}

type MeResponse struct {
	Login string `json:"login"`
}
