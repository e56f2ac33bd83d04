package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"stocktrack/internal/models"
)

// encodeDraft serializes a product draft for create/update requests.
// Drafts without an image travel as a JSON document; drafts with an image
// become a multipart form with one field per product attribute plus the
// "image" file part. Returns the body and its Content-Type.
func encodeDraft(draft models.ProductDraft) (io.Reader, string, error) {
	if draft.Image == nil {
		return encodeJSON(draft)
	}
	return encodeMultipart(draft)
}

func encodeJSON(draft models.ProductDraft) (io.Reader, string, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, "", fmt.Errorf("encode draft: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func encodeMultipart(draft models.ProductDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        draft.Name,
		"description": draft.Description,
		"category":    draft.Category,
		"price":       strconv.FormatFloat(draft.Price, 'f', -1, 64),
		"quantity":    strconv.Itoa(draft.Quantity),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("encode field %s: %w", name, err)
		}
	}

	part, err := newImagePart(w, draft.Image)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(draft.Image.Data); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func newImagePart(w *multipart.Writer, img *models.Attachment) (io.Writer, error) {
	if img.ContentType == "" {
		part, err := w.CreateFormFile("image", img.FileName)
		if err != nil {
			return nil, fmt.Errorf("encode image part: %w", err)
		}
		return part, nil
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.FileName))
	h.Set("Content-Type", img.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("encode image part: %w", err)
	}
	return part, nil
}
