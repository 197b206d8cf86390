// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user-visible messages in the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	tags := []language.Tag{}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("spmmsim: locale: %v", err)
	}

	for _, name := range locales {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		tags = append(tags, language.AmericanEnglish)
	}

	printer = message.NewPrinter(tags[0])
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
