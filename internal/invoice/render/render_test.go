package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() InvoiceView {
	return InvoiceView{
		Number:       "FAC#2024-001",
		ClientName:   "Atelier Dupont",
		CreationDate: "2024-03-15",
		TotalTTC:     24.00,
	}
}

func sampleItems() []LineItemView {
	return []LineItemView{
		{
			Name:        "A",
			Quantity:    2,
			UnitPriceHT: 10.00,
			TaxRate:     20,
			TotalHT:     20.00,
			TotalTTC:    24.00,
		},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	format, err = ParseFormat("docx")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, format)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseFormat("")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestInvoiceRejectsUnknownFormat(t *testing.T) {
	_, err := Invoice(sampleInvoice(), sampleItems(), Format("xml"), DefaultLabels())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "FAC_2024_001.pdf", SafeFilename("FAC#2024-001", FormatPDF))
	assert.Equal(t, "FAC_2024_001.docx", SafeFilename("FAC#2024-001", FormatDOCX))
	assert.Equal(t, "Facture_Dupont_03.pdf", SafeFilename("Facture Dupont/03", FormatPDF))
}

func TestSumTotals(t *testing.T) {
	ht, ttc := sumTotals(sampleItems())
	assert.InDelta(t, 20.00, ht, 0.0001)
	assert.InDelta(t, 24.00, ttc, 0.0001)

	ht, ttc = sumTotals(nil)
	assert.Zero(t, ht)
	assert.Zero(t, ttc)
}

func TestInvoiceRendersPDF(t *testing.T) {
	doc, err := Invoice(sampleInvoice(), sampleItems(), FormatPDF, DefaultLabels())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Data)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "FAC_2024_001.pdf", doc.Filename)
}

func TestInvoiceRendersDOCX(t *testing.T) {
	doc, err := Invoice(sampleInvoice(), sampleItems(), FormatDOCX, DefaultLabels())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Data)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", doc.ContentType)
	assert.Equal(t, "FAC_2024_001.docx", doc.Filename)
}

func TestInvoiceRendersWithoutItems(t *testing.T) {
	for _, format := range []Format{FormatPDF, FormatDOCX} {
		doc, err := Invoice(sampleInvoice(), nil, format, DefaultLabels())
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, doc.Data, "format %s", format)
	}
}

// docxBody extracts the main document part from the rendered docx archive.
func docxBody(t *testing.T, data []byte) string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}

	t.Fatal("word/document.xml missing from archive")
	return ""
}

func TestInvoiceDOCXContainsTotalsRow(t *testing.T) {
	doc, err := Invoice(sampleInvoice(), sampleItems(), FormatDOCX, DefaultLabels())
	require.NoError(t, err)

	body := docxBody(t, doc.Data)
	assert.True(t, strings.Contains(body, "20.00"), "total HT missing")
	assert.True(t, strings.Contains(body, "24.00"), "total TTC missing")
	assert.True(t, strings.Contains(body, "Totaux"), "totals caption missing")
	assert.True(t, strings.Contains(body, "Merci de votre confiance."), "footer missing")
}

func TestInvoiceDOCXHonorsCustomLabels(t *testing.T) {
	labels := DefaultLabels()
	labels.TotalsCaption = "Grand total"
	labels.FooterCaption = "Thank you for your business."

	doc, err := Invoice(sampleInvoice(), sampleItems(), FormatDOCX, labels)
	require.NoError(t, err)

	body := docxBody(t, doc.Data)
	assert.True(t, strings.Contains(body, "Grand total"))
	assert.True(t, strings.Contains(body, "Thank you for your business."))
	assert.False(t, strings.Contains(body, "Totaux"))
}
