package translate

import (
	"log"
	"os"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// LANG_ENV overrides the detected user locale for diagnostics.
const LANG_ENV = "ASM14_LANG"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// languages returns the preferred locales, most preferred first.
func languages() (locales []string) {
	if lang, ok := os.LookupEnv(LANG_ENV); ok && len(lang) > 0 {
		locales = append(locales, lang)
	}

	detected, err := locale.GetLocales()
	if err != nil {
		log.Printf("asm14: locale: %v", err)
	}
	locales = append(locales, detected...)

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(func() {
		printer = message.NewPrinter(message.MatchLanguage(languages()...))
	})
	return printer.Sprintf(key, args...)
}
