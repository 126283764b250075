// Package render produces downloadable invoice documents. Rendering is a
// pure transformation: no storage or network access, bytes in memory plus
// the content type and filename the caller needs to emit them.
package render

import (
	"errors"
	"fmt"
	"regexp"
)

// Format selects the document output format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for any format outside {docx, pdf}.
var ErrUnsupportedFormat = errors.New("unsupported_format")

// ParseFormat validates a caller-supplied format string before any
// rendering work begins.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// InvoiceView carries the invoice fields the renderers lay out.
type InvoiceView struct {
	Number       string
	ClientName   string
	CreationDate string
	TotalTTC     float64
}

// LineItemView carries one table row.
type LineItemView struct {
	Name        string
	Quantity    float64
	UnitPriceHT float64
	TaxRate     float64
	TotalHT     float64
	TotalTTC    float64
}

// Document is a rendered invoice ready to be served as an attachment.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Labels holds the captions printed on the document. They are configurable
// at deploy time; DefaultLabels matches the stock French layout.
type Labels struct {
	ColumnHeaders [6]string
	TotalsCaption string
	FooterCaption string
}

func DefaultLabels() Labels {
	return Labels{
		ColumnHeaders: [6]string{"Nom", "Quantité", "Prix unitaire HT", "Taux TVA %", "Total HT", "Total TTC"},
		TotalsCaption: "Totaux",
		FooterCaption: "Merci de votre confiance.",
	}
}

// Invoice renders the invoice into the requested format. An empty item list
// is valid and yields a totals row of 0.00. The totals row is recomputed
// from the items and is not reconciled with the invoice's stored total.
func Invoice(inv InvoiceView, items []LineItemView, format Format, labels Labels) (Document, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatDOCX:
		data, err = renderDOCX(inv, items, labels)
	case FormatPDF:
		data, err = renderPDF(inv, items, labels)
	default:
		return Document{}, ErrUnsupportedFormat
	}
	if err != nil {
		return Document{}, err
	}

	return Document{
		Data:        data,
		ContentType: format.ContentType(),
		Filename:    SafeFilename(inv.Number, format),
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SafeFilename derives a filesystem-safe attachment name from the invoice
// number by replacing every non-alphanumeric character with an underscore.
func SafeFilename(number string, format Format) string {
	return unsafeFilenameChars.ReplaceAllString(number, "_") + "." + string(format)
}

func sumTotals(items []LineItemView) (ht, ttc float64) {
	for _, item := range items {
		ht += item.TotalHT
		ttc += item.TotalTTC
	}
	return ht, ttc
}

func money(value float64) string {
	return fmt.Sprintf("%.2f €", value)
}

func amount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
