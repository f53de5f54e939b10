// Package storage implementa el bucket de adjuntos sobre la API REST de
// Supabase Storage. Se usa la service role key del lado del servidor; los
// clientes solo reciben URLs firmadas temporales.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/pkg/config"
)

var _ document.Storage = (*SupabaseStorage)(nil)

// SupabaseStorage cliente del bucket de adjuntos.
type SupabaseStorage struct {
	baseURL    string
	serviceKey string
	bucket     string
	signedTTL  int
	client     *http.Client
}

// NewSupabaseStorage construye el cliente desde la configuración.
func NewSupabaseStorage(cfg config.StorageConfig) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		signedTTL:  cfg.SignedTTL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sube el objeto al bucket y devuelve la ruta almacenada.
func (s *SupabaseStorage) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if s.baseURL == "" || s.serviceKey == "" {
		return "", fmt.Errorf("storage: supabase no configurado")
	}
	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Reintento idempotente: si el objeto existe se sobrescribe.
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: subir objeto: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage: subir objeto: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return objectPath, nil
}

// SignedURL genera una URL firmada temporal para leer el objeto.
func (s *SupabaseStorage) SignedURL(ctx context.Context, objectPath string) (string, error) {
	if s.baseURL == "" || s.serviceKey == "" {
		return "", fmt.Errorf("storage: supabase no configurado")
	}
	u := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, objectPath)
	payload, _ := json.Marshal(map[string]int{"expiresIn": s.signedTTL})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: firmar URL: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage: firmar URL: HTTP %d: %s", resp.StatusCode, string(body))
	}
	var out struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("storage: decodificar respuesta: %w", err)
	}
	return s.baseURL + "/storage/v1" + out.SignedURL, nil
}
