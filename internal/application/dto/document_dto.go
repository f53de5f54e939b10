package dto

// DocumentResponse documento generado (PDF o XML) listo para descargar.
type DocumentResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	// Fingerprint SHA-384 del XML canónico; solo aplica a la exportación fiscal.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// UploadResponse resultado de subir un archivo al bucket de almacenamiento.
type UploadResponse struct {
	Path      string `json:"path"`
	SignedURL string `json:"signed_url,omitempty"`
}
