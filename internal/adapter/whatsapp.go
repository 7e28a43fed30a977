package adapter

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/rotisserie/eris"
)

// WhatsAppHandle derives a wa.me messaging link from a raw phone number.
// The number must parse and validate for the given default region; the
// handle uses the E.164 digits without the leading plus.
func WhatsAppHandle(rawPhone, defaultRegion string) (string, error) {
	rawPhone = strings.TrimSpace(rawPhone)
	if rawPhone == "" {
		return "", eris.New("whatsapp: phone number is empty")
	}

	number, err := phonenumbers.Parse(rawPhone, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", eris.Wrap(err, "whatsapp: parse phone")
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", eris.New("whatsapp: phone number is not valid")
	}

	e164 := phonenumbers.Format(number, phonenumbers.E164)
	return "https://wa.me/" + strings.TrimPrefix(e164, "+"), nil
}
