package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/prepio/internal/models"
)

type DocumentExtractor interface {
	Extract(doc *models.UploadedDocument) (string, error)
}

type extractFunc func(data []byte) (string, error)

type documentExtractor struct {
	handlers map[models.MediaType]extractFunc
}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{
		handlers: map[models.MediaType]extractFunc{
			models.MediaTypePDF:       extractPDF,
			models.MediaTypeDOCX:      extractDOCX,
			models.MediaTypePlainText: extractPlainText,
		},
	}
}

// Extract converts the document to plain text based solely on its declared
// media type.
func (e *documentExtractor) Extract(doc *models.UploadedDocument) (string, error) {
	if doc == nil {
		return "", missingInput("No resume file uploaded.")
	}

	handler, ok := e.handlers[doc.MediaType]
	if !ok {
		return "", &UnsupportedMediaTypeError{MediaType: doc.MediaType}
	}

	return handler(doc.Data)
}

func extractPlainText(data []byte) (string, error) {
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", pageIndex, err)
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n\n")
		}
		textBuilder.WriteString(pageText)
	}

	return textBuilder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	text, err := documentXMLText(r.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX body: %w", err)
	}

	return text, nil
}

// documentXMLText walks word/document.xml and keeps only run text. Paragraph
// ends become newlines, tabs and breaks inside runs are preserved. Property
// elements (w:pPr, w:rPr, ...) are skipped so tab-stop definitions stay out.
func documentXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		result  strings.Builder
		inText  bool
		inProps int
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if isPropertyElement(t.Name.Local) {
				inProps++
				continue
			}
			if inProps > 0 {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				result.WriteString("\t")
			case "br", "cr":
				result.WriteString("\n")
			}
		case xml.EndElement:
			if isPropertyElement(t.Name.Local) {
				inProps--
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				result.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				result.Write(t)
			}
		}
	}

	return strings.TrimRight(result.String(), "\n"), nil
}

// isPropertyElement matches WordprocessingML property containers such as
// pPr, rPr, sectPr and tblPr.
func isPropertyElement(local string) bool {
	return len(local) > 2 && strings.HasSuffix(local, "Pr")
}
