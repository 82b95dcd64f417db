package itemservice

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmcdole/purse/internal/domain"
)

const (
	longDateLayout  = "January 2, 2006 at 3:04 PM"
	shortDateLayout = "1/2/06, 3:04 PM"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders a transfer amount in its currency, e.g. "$ 12.50".
// Unknown currency codes fall back to "<amount> <code>".
func FormatAmount(t domain.Transfer) string {
	unit, err := currency.ParseISO(t.CurrencyCode)
	if err != nil {
		return fmt.Sprintf("%s %s", t.Amount.StringFixed(2), t.CurrencyCode)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(t.Amount.InexactFloat64())))
}

// TransferTitle is "<amount> • <description>"
func TransferTitle(t domain.Transfer) string {
	return FormatAmount(t) + " • " + t.Description
}

// TransferDetail names the counterparty and the date. Long style is used on
// the sent list, short style on the received list.
func TransferDetail(t domain.Transfer, longDateStyle bool) string {
	if longDateStyle {
		return fmt.Sprintf("Sent to: %s on %s", t.Recipient, t.Date.Format(longDateLayout))
	}
	return fmt.Sprintf("Received from: %s on %s", t.Sender, t.Date.Format(shortDateLayout))
}
