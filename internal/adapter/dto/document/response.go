package document

// UploadResponse is returned after a successful document upload
type UploadResponse struct {
	URL      string `json:"url"`
	ObjectID string `json:"objectId"`
}

// DownloadResponse carries a time-limited download URL
type DownloadResponse struct {
	URL string `json:"url"`
}

// ListResponse carries the caller's stored document object ids
type ListResponse struct {
	Objects []string `json:"objects"`
}
