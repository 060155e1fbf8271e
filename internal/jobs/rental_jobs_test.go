package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	tpl := "Dear [CustomerName], your balance at [ShopName] for rental #[InvoiceID] is Rs. [BalanceDue]."

	got := renderTemplate(tpl, map[string]string{
		"CustomerName": "Nimal Perera",
		"ShopName":     "Kandy Tool Hire",
		"InvoiceID":    "rental-1",
		"BalanceDue":   "2500.00",
	})
	assert.Equal(t, "Dear Nimal Perera, your balance at Kandy Tool Hire for rental #rental-1 is Rs. 2500.00.", got)
}

func TestRenderTemplateLeavesUnknownTokens(t *testing.T) {
	got := renderTemplate("Hello [CustomerName], [SomethingElse]", map[string]string{
		"CustomerName": "Nimal",
	})
	assert.Equal(t, "Hello Nimal, [SomethingElse]", got)
}
