package domain

// UploadSignature is the server-issued grant for a direct Cloudinary upload.
type UploadSignature struct {
	CloudName      string `json:"cloudName"`
	APIKey         string `json:"apiKey"`
	Timestamp      int64  `json:"timestamp"`
	Signature      string `json:"signature"`
	Folder         string `json:"folder"`
	Transformation string `json:"transformation,omitempty"`
}

// UploadedImage is the subset of Cloudinary's upload response the dashboard keeps.
type UploadedImage struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"secureUrl"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}
