// Package translate formats user visible messages for the locale of the
// running process.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the process locale is unknown.
const Fallback = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Printer returns the message printer for the process locale.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Debugf("translate: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{Fallback}
		}

		tag := message.MatchLanguage(locales...)
		if tag == language.Und {
			tag = language.MustParse(Fallback)
		}

		printer = message.NewPrinter(tag)
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
