package models

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is one of the ISO codes the booking flow can charge in.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"

	DefaultCurrency = CurrencyUSD
)

// PaymentGateway is the processor that settles payments in a currency.
type PaymentGateway string

const (
	GatewayRazorpay PaymentGateway = "Razorpay"
	GatewayStripe   PaymentGateway = "Stripe"
)

type CurrencyInfo struct {
	Code    Currency
	Symbol  string
	Name    string
	Gateway PaymentGateway
}

// Currencies lists the supported currencies in display order.
var Currencies = []CurrencyInfo{
	{Code: CurrencyINR, Symbol: "₹", Name: "Indian Rupee", Gateway: GatewayRazorpay},
	{Code: CurrencyUSD, Symbol: "$", Name: "US Dollar", Gateway: GatewayStripe},
	{Code: CurrencyEUR, Symbol: "€", Name: "Euro", Gateway: GatewayStripe},
	{Code: CurrencyGBP, Symbol: "£", Name: "British Pound", Gateway: GatewayStripe},
}

// ParseCurrency validates s against the supported set.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidCurrency)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	return CurrencyIndex(c) >= 0
}

// Info returns the catalogue entry for c. ok is false for unsupported codes.
func (c Currency) Info() (CurrencyInfo, bool) {
	if i := CurrencyIndex(c); i >= 0 {
		return Currencies[i], true
	}
	return CurrencyInfo{}, false
}

// Gateway returns the preferred payment gateway: Razorpay for INR, Stripe otherwise.
func (c Currency) Gateway() PaymentGateway {
	if c == CurrencyINR {
		return GatewayRazorpay
	}
	return GatewayStripe
}

func (c Currency) Symbol() string {
	if info, ok := c.Info(); ok {
		return info.Symbol
	}
	return string(c)
}

// Label is the trigger text of the currency selector, e.g. "€ EUR".
func (c Currency) Label() string {
	if info, ok := c.Info(); ok {
		return info.Symbol + " " + string(info.Code)
	}
	return string(c)
}

// CurrencyIndex returns the display position of c, or -1.
func CurrencyIndex(c Currency) int {
	for i, info := range Currencies {
		if info.Code == c {
			return i
		}
	}
	return -1
}

// FormatAmount renders amount in c using en-US conventions.
func FormatAmount(amount float64, c Currency) string {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, c)
	}
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
