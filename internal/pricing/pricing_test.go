package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeMargin(t *testing.T) {
	cases := []struct {
		price, cost, want string
	}{
		{"100", "60", "40"},
		{"120", "80", "33.33333333333333"},
		{"50", "50", "0"},
		{"80", "100", "-25"},
		{"0", "10", "0"},
		{"-5", "1", "0"},
	}
	for _, c := range cases {
		got := ComputeMargin(dec(c.price), dec(c.cost))
		assert.True(t, dec(c.want).Equal(got), "price=%s cost=%s got=%s", c.price, c.cost, got)
	}
}

func TestComputeMargin_MatchesFormula(t *testing.T) {
	for price := int64(1); price <= 200; price += 7 {
		for cost := int64(0); cost <= 250; cost += 13 {
			p, c := decimal.NewFromInt(price), decimal.NewFromInt(cost)
			want := p.Sub(c).Div(p).Mul(decimal.NewFromInt(100))
			assert.True(t, want.Equal(ComputeMargin(p, c)))
		}
	}
}

func TestClampDiscount(t *testing.T) {
	subtotals := []string{"0", "10", "300"}
	discounts := []string{"-5", "0", "3.5", "10", "1000"}
	for _, s := range subtotals {
		for _, d := range discounts {
			want := decimal.Min(decimal.Max(dec(d), decimal.Zero), dec(s))
			assert.True(t, want.Equal(ClampDiscount(dec(d), dec(s))), "d=%s s=%s", d, s)
		}
	}
}

func TestNewTotals(t *testing.T) {
	tot := NewTotals(dec("300"), dec("1000"))
	assert.Equal(t, "300", tot.Subtotal.String())
	assert.Equal(t, "300", tot.Discount.String())
	assert.True(t, tot.Total.IsZero())
}
