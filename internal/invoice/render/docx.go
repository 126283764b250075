package render

import (
	"bytes"

	docx "github.com/fumiama/go-docx"
)

func renderDOCX(inv InvoiceView, items []LineItemView, labels Labels) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	header := w.AddParagraph()
	header.AddText(inv.ClientName).Size("32").Bold()

	title := w.AddParagraph().Justification("center")
	title.AddText(inv.Number).Size("40").Bold()

	w.AddParagraph().AddText("Numéro de facture : " + inv.Number)
	w.AddParagraph().AddText("Date de création : " + inv.CreationDate)
	w.AddParagraph().AddText("Montant total TTC : " + money(inv.TotalTTC))
	w.AddParagraph()

	// Header row + one row per item + totals row.
	table := w.AddTable(len(items)+2, 6, 9072, nil)

	for i, label := range labels.ColumnHeaders {
		cell := table.TableRows[0].TableCells[i]
		cell.AddParagraph().AddText(label).Bold()
	}

	for i, item := range items {
		cells := table.TableRows[i+1].TableCells
		cells[0].AddParagraph().AddText(item.Name)
		cells[1].AddParagraph().AddText(amount(item.Quantity))
		cells[2].AddParagraph().AddText(amount(item.UnitPriceHT))
		cells[3].AddParagraph().AddText(amount(item.TaxRate))
		cells[4].AddParagraph().AddText(amount(item.TotalHT))
		cells[5].AddParagraph().AddText(amount(item.TotalTTC))
	}

	totalHT, totalTTC := sumTotals(items)
	totals := table.TableRows[len(items)+1].TableCells
	totals[0].AddParagraph().AddText(labels.TotalsCaption).Bold()
	totals[4].AddParagraph().AddText(amount(totalHT)).Bold()
	totals[5].AddParagraph().AddText(amount(totalTTC)).Bold()

	w.AddParagraph()
	footer := w.AddParagraph().Justification("center")
	footer.AddText(labels.FooterCaption).Italic()

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
