package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"hrdocs/internal"
)

// BlobFilesPrefix is where source documents live inside the export archive.
const BlobFilesPrefix = "BlobFiles/"

var documentsOfRecordHeader = []string{
	"FILENAME", "METADATA", "DocumentsOfRecord", "PersonNumber", "DocumentType", "Country",
	"DocumentCode", "DocumentName", "DateFrom", "DateTo", "SourceSystemOwner", "SourceSystemId",
}

var documentAttachmentHeader = []string{
	"FILENAME", "METADATA", "DocumentAttachment", "PersonNumber", "DocumentType", "Country",
	"DocumentCode", "DataTypeCode", "URLorTextorFileName", "Title", "File", "SourceSystemOwner", "SourceSystemId",
}

var documentExtensions = map[string]struct{}{
	".pdf": {}, ".tif": {}, ".tiff": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
}

func IsDocumentFile(name string) bool {
	_, ok := documentExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// RenderExport concatenates the two pipe-delimited tables: documents of
// record first, attachments immediately after, no separator between them.
func RenderExport(docs []internal.DocumentRow, atts []internal.AttachmentRow) string {
	var b strings.Builder

	writeLine := func(fields []string) {
		b.WriteString(strings.Join(fields, "|"))
		b.WriteByte('\n')
	}

	writeLine(documentsOfRecordHeader)
	for _, r := range docs {
		writeLine([]string{
			r.FileName, r.Metadata, r.DocumentsOfRecord, r.PersonNumber, r.DocumentType, r.Country,
			r.DocumentCode, r.DocumentName, r.DateFrom, r.DateTo, r.SourceSystemOwner, r.SourceSystemID,
		})
	}

	writeLine(documentAttachmentHeader)
	for _, r := range atts {
		writeLine([]string{
			r.FileName, r.Metadata, r.DocumentAttachment, r.PersonNumber, r.DocumentType, r.Country,
			r.DocumentCode, r.DataTypeCode, r.URLorTextorFileName, r.Title, r.File, r.SourceSystemOwner, r.SourceSystemID,
		})
	}

	return b.String()
}

func WriteExport(blob, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(blob), 0o644)
}

// BuildArchive packages the export blob at the archive root and every
// document-like file from docsDir under BlobFiles/.
func BuildArchive(blob, exportFileName, docsDir, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)

	entry, err := w.Create(exportFileName)
	if err != nil {
		_ = w.Close()
		return err
	}
	if _, err := entry.Write([]byte(blob)); err != nil {
		_ = w.Close()
		return err
	}

	files, err := os.ReadDir(docsDir)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("read documents dir %s: %w", docsDir, err)
	}
	for _, file := range files {
		if file.IsDir() || !IsDocumentFile(file.Name()) {
			continue
		}
		if err := addArchiveFile(w, filepath.Join(docsDir, file.Name()), path.Join(BlobFilesPrefix, file.Name())); err != nil {
			_ = w.Close()
			return err
		}
	}

	return w.Close()
}

func addArchiveFile(w *zip.Writer, srcPath, archivePath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := w.Create(archivePath)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
