package templates

import (
	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/services/web/platform/webi18n"
)

// Localizer provides translated strings for templ components.
type Localizer = webi18n.Localizer

// T returns a translated string or the key itself.
func T(loc Localizer, key string) string {
	return webi18n.T(loc, key)
}

func pageLanguage(loc Localizer) i18n.Code {
	return webi18n.Language(loc)
}
