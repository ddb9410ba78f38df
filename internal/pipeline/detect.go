package pipeline

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Detection struct {
	MimeType  string
	Supported bool
	PageCount int
}

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
}

func MimeType(name string) string {
	if mime, ok := mimeByExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// DetectDocument gates a fetched file before it is sent to the classification
// service. Unknown extensions and unreadable PDFs are unsupported; their
// extraction record is all error tokens, produced without a model call.
func DetectDocument(name string, content []byte) Detection {
	mime := MimeType(name)
	if mime == "application/octet-stream" {
		return Detection{MimeType: mime}
	}

	det := Detection{MimeType: mime, Supported: true}
	if mime != "application/pdf" {
		return det
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Detection{MimeType: mime}
	}
	det.PageCount = reader.NumPage()
	return det
}
