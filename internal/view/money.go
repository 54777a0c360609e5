package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer formats amounts with the grouping rules of a locale.
type Printer struct {
	p *message.Printer
}

func NewPrinter(tag language.Tag) Printer {
	return Printer{p: message.NewPrinter(tag)}
}

// Money renders an amount as "$1,250,000", with the sign in front.
func (p Printer) Money(v int64) string {
	if v < 0 {
		return p.p.Sprintf("-$%d", -v)
	}
	return p.p.Sprintf("$%d", v)
}

// Number renders an integer with thousands separators.
func (p Printer) Number(v int64) string {
	return p.p.Sprintf("%d", v)
}
