package knowledge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// extractText pulls the full text out of a corpus file by format. Extraction
// failures degrade to an empty string (the file then simply scores 0);
// nothing here is allowed to fail the whole search.
func (b *Base) extractText(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return b.extractPDF(path)
	case ".xlsx", ".xls":
		return b.extractSpreadsheet(path)
	default:
		// Plain text formats (.txt and friends) are read verbatim.
		return b.extractPlain(path)
	}
}

func (b *Base) extractPlain(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		b.logger.Warn("knowledge", "Failed to read file", map[string]interface{}{
			"file":  filepath.Base(path),
			"error": err.Error(),
		})
		return ""
	}
	return string(content)
}

func (b *Base) extractPDF(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		b.logger.Warn("knowledge", "Failed to open PDF", map[string]interface{}{
			"file":  filepath.Base(path),
			"error": err.Error(),
		})
		return ""
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		b.logger.Warn("knowledge", "Failed to extract PDF text", map[string]interface{}{
			"file":  filepath.Base(path),
			"error": err.Error(),
		})
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		b.logger.Warn("knowledge", "Failed to read PDF text", map[string]interface{}{
			"file":  filepath.Base(path),
			"error": err.Error(),
		})
		return ""
	}
	return buf.String()
}

// extractSpreadsheet flattens every sheet to delimited text and concatenates
// the sheets in workbook order.
func (b *Base) extractSpreadsheet(path string) string {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		b.logger.Warn("knowledge", "Failed to open spreadsheet", map[string]interface{}{
			"file":  filepath.Base(path),
			"error": err.Error(),
		})
		return ""
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			b.logger.Warn("knowledge", "Failed to read sheet", map[string]interface{}{
				"file":  filepath.Base(path),
				"sheet": sheet,
				"error": err.Error(),
			})
			continue
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ","))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
