package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale groups digits the Indian way (12,34,567)
const DefaultLocale = "en-IN"

// LocaleFormatter renders numbers with the digit grouping of one locale
type LocaleFormatter struct {
	printer *message.Printer
}

// NewLocaleFormatter creates a formatter for a BCP 47 tag. An unparseable
// tag falls back to DefaultLocale.
func NewLocaleFormatter(locale string) *LocaleFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &LocaleFormatter{printer: message.NewPrinter(tag)}
}

// Format renders n digit-grouped with at most three fraction digits
func (f *LocaleFormatter) Format(n float64) string {
	return f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}
