package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// A .docx file is a zip archive; the document body lives in
// word/document.xml. Paragraph text is the concatenation of the w:t runs,
// joined with spaces between paragraphs.
func fromDOCX(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document body: %w", err)
		}
		defer rc.Close()

		return readDocumentXML(rc)
	}

	return "", fmt.Errorf("docx archive has no document body")
}

func readDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		sb         strings.Builder
		inText     bool
		needsSpace bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				needsSpace = true
			}
		case xml.CharData:
			if inText {
				if needsSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				needsSpace = false
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
