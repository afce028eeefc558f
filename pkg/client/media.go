package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// UploadSignature asks the API to sign a direct Cloudinary upload into folder.
func (c *Client) UploadSignature(ctx context.Context, folder string) (*domain.UploadSignature, error) {
	path := "/cloudinary/upload-signature"
	if folder != "" {
		path += "?" + url.Values{"folder": {folder}}.Encode()
	}
	var sig domain.UploadSignature
	if err := c.get(ctx, path, &sig); err != nil {
		return nil, fmt.Errorf("client.UploadSignature: %w", err)
	}
	if sig.CloudName == "" || sig.Signature == "" {
		return nil, fmt.Errorf("client.UploadSignature: incomplete signature")
	}
	return &sig, nil
}

// UploadImage signs and uploads an image straight to Cloudinary, returning
// the hosted asset. The API server never sees the file bytes.
func (c *Client) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (*domain.UploadedImage, error) {
	sig, err := c.UploadSignature(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("client.UploadImage: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct{ key, value string }{
		{"api_key", sig.APIKey},
		{"timestamp", strconv.FormatInt(sig.Timestamp, 10)},
		{"signature", sig.Signature},
		{"folder", sig.Folder},
		{"transformation", sig.Transformation},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("client.UploadImage: write %s: %w", f.key, err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("client.UploadImage: create file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client.UploadImage: copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.UploadImage: close form: %w", err)
	}

	endpoint := fmt.Sprintf(c.cloudinaryURL, url.PathEscape(sig.CloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("client.UploadImage: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.UploadImage: %w", &NetworkError{Err: err})
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("client.UploadImage: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("client.UploadImage: %w", errorFromResponse(resp.StatusCode, body))
	}

	res := gjson.ParseBytes(body)
	img := &domain.UploadedImage{
		PublicID:  res.Get("public_id").String(),
		SecureURL: res.Get("secure_url").String(),
		Width:     int(res.Get("width").Int()),
		Height:    int(res.Get("height").Int()),
		Format:    res.Get("format").String(),
		Bytes:     res.Get("bytes").Int(),
	}
	if img.SecureURL == "" {
		return nil, fmt.Errorf("client.UploadImage: response has no secure_url")
	}
	c.log.Info().Str("public_id", img.PublicID).Int64("bytes", img.Bytes).Msg("image uploaded")
	return img, nil
}
