package printer

import (
	"fmt"
	"strings"
	"time"

	"resto-pos/utils"
)

const (
	Width       = 32
	nameColumn  = 20
	amountWidth = 12
)

type Line struct {
	Name   string
	Plate  string
	Amount float64
}

type Receipt struct {
	RestaurantName string
	InvoiceNo      uint
	Date           time.Time
	Table          string
	Items          []Line
	Subtotal       float64
	ServiceCharge  float64
	Tax            float64
	Total          float64
}

type row struct {
	text  string
	align Align
	bold  bool
}

func (r Receipt) rows() []row {
	var rows []row
	center := func(s string, bold bool) { rows = append(rows, row{s, AlignCenter, bold}) }
	left := func(s string, bold bool) { rows = append(rows, row{s, AlignLeft, bold}) }

	center(strings.Repeat("=", Width), false)
	center(truncate("  "+strings.ToUpper(r.RestaurantName), Width), true)
	center("     ", false)
	center(strings.Repeat("=", Width), false)

	table := r.Table
	if table == "" {
		table = "Takeaway"
	}
	left(fmt.Sprintf("INV: #%05d", r.InvoiceNo), false)
	left("DATE: "+r.Date.Format("02/01/2006 15:04:05"), false)
	left("TABLE: "+table, false)
	left(strings.Repeat("-", Width), false)
	left("", false)
	left("ITEM                   AMT", false)
	left(strings.Repeat("-", Width), false)

	for _, item := range r.Items {
		label := fmt.Sprintf("%s (%s)", item.Name, strings.ToUpper(item.Plate))
		chunks := wrap(label, nameColumn)
		for _, c := range chunks[:len(chunks)-1] {
			left(c, false)
		}
		left(amountRow(chunks[len(chunks)-1], item.Amount), false)
	}

	left(strings.Repeat("-", Width), false)
	left(amountRow("SUBTOTAL:", r.Subtotal), false)
	if r.ServiceCharge > 0 {
		left(amountRow("SERVICE:", r.ServiceCharge), false)
	}
	if r.Tax > 0 {
		left(amountRow("CGST:", r.Tax/2), false)
		left(amountRow("SGST:", r.Tax/2), false)
	}
	left(strings.Repeat("-", Width), false)
	left(amountRow("TOTAL:", r.Total), true)
	left(strings.Repeat("-", Width), false)

	center("        THANK YOU!", false)
	center("", false)
	center(strings.Repeat("=", Width), false)
	center("", false)
	center(strings.Repeat("=", Width), false)
	return rows
}

// Text renders the receipt as plain 32-column lines.
func (r Receipt) Text() string {
	var b strings.Builder
	for _, row := range r.rows() {
		b.WriteString(row.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// ESCPOS renders the receipt as a printer byte stream.
func (r Receipt) ESCPOS() []byte {
	e := NewEncoder()
	for _, row := range r.rows() {
		if row.align != e.align {
			e.SetAlign(row.align)
		}
		if row.bold != e.bold {
			e.SetBold(row.bold)
		}
		e.Line(row.text)
	}
	e.Feed()
	return e.Bytes()
}

func amountRow(label string, amount float64) string {
	return fmt.Sprintf("%-*s%*s", nameColumn, label, amountWidth, utils.FormatAmount(amount))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// wrap splits s into chunks of at most n runes; it always returns at least one chunk.
func wrap(s string, n int) []string {
	r := []rune(s)
	if len(r) <= n {
		return []string{s}
	}
	var out []string
	for len(r) > n {
		out = append(out, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
