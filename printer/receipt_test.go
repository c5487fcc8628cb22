package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() Receipt {
	return Receipt{
		RestaurantName: "Hunger Family Restaurant",
		InvoiceNo:      42,
		Date:           time.Date(2026, 3, 7, 19, 5, 9, 0, time.Local),
		Table:          "5",
		Items: []Line{
			{Name: "Clear Soup", Plate: "single", Amount: 50},
			{Name: "Paneer Butter Masala", Plate: "full", Amount: 190},
		},
		Subtotal: 240,
		Tax:      12,
		Total:    252,
	}
}

func TestReceiptText_Layout(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(sampleReceipt().Text(), "\n"), "\n")

	assert.Equal(t, strings.Repeat("=", 32), lines[0])
	assert.Equal(t, "  HUNGER FAMILY RESTAURANT", lines[1])
	assert.Contains(t, lines, "INV: #00042")
	assert.Contains(t, lines, "DATE: 07/03/2026 19:05:09")
	assert.Contains(t, lines, "TABLE: 5")
	assert.Contains(t, lines, "ITEM                   AMT")
	assert.Contains(t, lines, "Clear Soup (SINGLE)        50.00")
	assert.Contains(t, lines, "Paneer Butter Masala")
	assert.Contains(t, lines, " (FULL)                   190.00")
	assert.Contains(t, lines, "SUBTOTAL:                 240.00")
	assert.Contains(t, lines, "CGST:                       6.00")
	assert.Contains(t, lines, "SGST:                       6.00")
	assert.Contains(t, lines, "TOTAL:                    252.00")
	assert.NotContains(t, lines, "SERVICE:                    0.00")
	assert.Contains(t, lines, "        THANK YOU!")

	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), Width, l)
	}
}

func TestAmountRow_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "TOTAL:                      2.68", amountRow("TOTAL:", 2.675))
	assert.Equal(t, "TOTAL:                   1234.50", amountRow("TOTAL:", 1234.5))
}

func TestReceiptText_TakeawayAndService(t *testing.T) {
	r := sampleReceipt()
	r.Table = ""
	r.Tax = 0
	r.ServiceCharge = 24
	r.Total = 264

	text := r.Text()
	assert.Contains(t, text, "TABLE: Takeaway\n")
	assert.Contains(t, text, "SERVICE:                   24.00\n")
	assert.NotContains(t, text, "CGST:")
}

func TestReceiptText_LongNameWrapsInChunks(t *testing.T) {
	r := sampleReceipt()
	r.Items = []Line{{Name: "Special Chicken Lollipop Dry Fry", Plate: "single", Amount: 99.5}}

	lines := strings.Split(r.Text(), "\n")
	assert.Contains(t, lines, "Special Chicken Loll")
	assert.Contains(t, lines, "ipop Dry Fry (SINGLE")
	assert.Contains(t, lines, ")                          99.50")
}

func TestReceiptText_TruncatesRestaurantName(t *testing.T) {
	r := sampleReceipt()
	r.RestaurantName = strings.Repeat("x", 50)
	lines := strings.Split(r.Text(), "\n")
	assert.Len(t, lines[1], Width)
}

func TestReceiptESCPOS_Framing(t *testing.T) {
	out := sampleReceipt().ESCPOS()

	assert.True(t, bytes.HasPrefix(out, []byte{0x1B, 0x40, 0x1B, 0x4D, 0x00, 0x0F, '\n', '\n'}))
	assert.True(t, bytes.HasSuffix(out, []byte{0x1B, 0x64, 0x08}))
	assert.True(t, bytes.Contains(out, []byte{0x1B, 0x61, 0x01}), "center alignment")
	assert.True(t, bytes.Contains(out, []byte{0x1B, 0x61, 0x00}), "left alignment")
	assert.True(t, bytes.Contains(out, []byte{0x1B, 0x45, 0x01}), "bold on")
	assert.True(t, bytes.Contains(out, []byte{0x1B, 0x45, 0x00}), "bold off")
	assert.True(t, bytes.Contains(out, []byte("INV: #00042\n")))
}

func TestEncoder_DropsNonLatin1(t *testing.T) {
	e := &Encoder{}
	e.Text("₹50 café")
	assert.Equal(t, []byte{'5', '0', ' ', 'c', 'a', 'f', 0xE9}, e.Bytes())
}

func TestParseLpstat(t *testing.T) {
	out := "printer POS-58 is idle.  enabled since Mon\nprinter Office is idle.\nsomething else\n"
	assert.Equal(t, []string{"POS-58", "Office"}, parseLpstat(out))
}

func TestSpoolerSend(t *testing.T) {
	ok := NewSpooler("true", "POS-58")
	require.NoError(t, ok.PrintReceipt(context.Background(), "", sampleReceipt()))

	failing := NewSpooler("false", "POS-58")
	err := failing.Send(context.Background(), "", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POS-58")

	err = failing.Send(context.Background(), "Kitchen", []byte("x"))
	assert.Contains(t, err.Error(), "Kitchen")
}
