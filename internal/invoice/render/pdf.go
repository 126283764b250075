package render

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Grid widths per table column; the 12-column maroto grid stands in for the
// percentage split across {name, qty, unit HT, tax %, total HT, total TTC}.
var tableGrid = [6]int{3, 1, 2, 2, 2, 2}

func renderPDF(inv InvoiceView, items []LineItemView, labels Labels) ([]byte, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	// Footer rows are bottom-anchored on the page regardless of table length.
	if err := m.RegisterFooter(row.New(10).Add(
		text.NewCol(12, labels.FooterCaption, props.Text{
			Size:  9,
			Style: fontstyle.Italic,
			Align: align.Center,
		}),
	)); err != nil {
		return nil, err
	}

	// Header band
	m.AddRow(12,
		text.NewCol(12, inv.ClientName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(14,
		text.NewCol(12, inv.Number, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	// Invoice Meta
	m.AddRow(20,
		col.New(12).Add(
			text.New("Numéro de facture : "+inv.Number, props.Text{Top: 0}),
			text.New("Date de création : "+inv.CreationDate, props.Text{Top: 5}),
			text.New("Montant total TTC : "+money(inv.TotalTTC), props.Text{Top: 10}),
		),
	)

	// Table Header
	m.AddRow(8,
		text.NewCol(tableGrid[0], labels.ColumnHeaders[0], props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(tableGrid[1], labels.ColumnHeaders[1], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(tableGrid[2], labels.ColumnHeaders[2], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(tableGrid[3], labels.ColumnHeaders[3], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(tableGrid[4], labels.ColumnHeaders[4], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(tableGrid[5], labels.ColumnHeaders[5], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	// Items, each underlined by a separator rule
	for _, item := range items {
		m.AddRow(7,
			text.NewCol(tableGrid[0], item.Name, props.Text{Size: 9}),
			text.NewCol(tableGrid[1], amount(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(tableGrid[2], amount(item.UnitPriceHT), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(tableGrid[3], amount(item.TaxRate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(tableGrid[4], amount(item.TotalHT), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(tableGrid[5], amount(item.TotalTTC), props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(2, line.NewCol(12))
	}

	// Totals recomputed from the item collection
	totalHT, totalTTC := sumTotals(items)
	m.AddRow(8,
		text.NewCol(8, labels.TotalsCaption, props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, amount(totalHT), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, amount(totalTTC), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
