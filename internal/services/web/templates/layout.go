package templates

import (
	"strconv"
	"time"

	module "github.com/louisbranch/talenthub/internal/services/web/module"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
)

// NoticeDismissAfter is how long a notice toast stays on screen.
const NoticeDismissAfter = 5 * time.Second

// Notice is a transient message shown above the page body.
type Notice struct {
	Kind    string
	Message string
}

// ContactLinks are the customer-service links. Empty links are hidden.
type ContactLinks struct {
	WhatsApp string
	Telegram string
}

// Empty reports whether no link is set.
func (c ContactLinks) Empty() bool {
	return c.WhatsApp == "" && c.Telegram == ""
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	Viewer       module.Viewer
	Notice       *Notice
	Contact      ContactLinks
	// Live opts the page into the /live websocket.
	Live bool
}

func documentTitle(loc Localizer, title string) string {
	siteName := T(loc, "site.name")
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}

func returnTarget(page PageContext) string {
	if page.CurrentPath == "" || page.CurrentPath == routepath.Login {
		return ""
	}
	return page.CurrentPath
}

type contactEntry struct {
	kind string
	url  string
	key  string
}

func contactEntries(links ContactLinks) []contactEntry {
	return []contactEntry{
		{kind: "whatsapp", url: links.WhatsApp, key: "contact.whatsapp"},
		{kind: "telegram", url: links.Telegram, key: "contact.telegram"},
	}
}

func noticeClass(notice Notice) string {
	kind := notice.Kind
	if kind == "" {
		kind = "success"
	}
	return "notice notice-" + kind
}

func dismissAfterMillis() string {
	return strconv.FormatInt(NoticeDismissAfter.Milliseconds(), 10)
}

func copyright(loc Localizer) string {
	return strconv.Itoa(time.Now().Year()) + " " + T(loc, "site.name") + ". " + T(loc, "footer.rights")
}
