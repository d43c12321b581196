// Package l10n translates the user-facing messages of propmerge.
package l10n

import (
	"fmt"
	"sync"

	"github.com/snapcore/go-gettext"
)

// Domain is the gettext text domain of the message catalogs.
const Domain = "propmerge"

var catalog = sync.OnceValue(func() gettext.Catalog {
	domain := gettext.TextDomain{Name: Domain}
	return domain.UserLocale()
})

// T localizes str and formats it with vars, if any.
func T(str string, vars ...any) string {
	translation := catalog().Gettext(str)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}

// TN localizes a string with a singular and a plural form.
func TN(singular, plural string, n uint32, vars ...any) string {
	translation := catalog().NGettext(singular, plural, n)
	if len(vars) > 0 {
		translation = fmt.Sprintf(translation, vars...)
	}
	return translation
}
