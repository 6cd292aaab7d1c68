// Package ingest turns uploaded documents into the data URIs stored in the
// file collection.
package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
)

const (
	MimePDF = "application/pdf"
	MaxSize = 10 * 1024 * 1024
)

var pdfMagic = []byte("%PDF-")

// Document is a validated upload ready to be stored.
type Document struct {
	Name     string
	MimeType string
	Size     int64
	Content  string
}

// PDF reads at most MaxSize bytes from r. The upload is accepted when it is
// declared as a PDF (by MIME type or by a .pdf name) and starts with the PDF
// header.
func PDF(name, mimeType string, r io.Reader) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("file name is required: %w", errdefs.ErrValidation)
	}
	if !declaredPDF(name, mimeType) {
		return nil, fmt.Errorf("only PDF files are accepted, got %q: %w", mimeType, errdefs.ErrValidation)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s is empty: %w", name, errdefs.ErrValidation)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes: %w", name, MaxSize, errdefs.ErrValidation)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, fmt.Errorf("file %s is not a PDF document: %w", name, errdefs.ErrValidation)
	}

	return &Document{
		Name:     name,
		MimeType: MimePDF,
		Size:     int64(len(data)),
		Content:  DataURI(MimePDF, data),
	}, nil
}

func declaredPDF(name, mimeType string) bool {
	mt, _, _ := strings.Cut(mimeType, ";")
	if strings.EqualFold(strings.TrimSpace(mt), MimePDF) {
		return true
	}
	return strings.EqualFold(path.Ext(name), ".pdf")
}

func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the MIME type and bytes of a base64 data URI.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri: %w", errdefs.ErrValidation)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri without payload: %w", errdefs.ErrValidation)
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data uri is not base64: %w", errdefs.ErrValidation)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data uri: %w", errdefs.ErrValidation)
	}
	return mimeType, data, nil
}
