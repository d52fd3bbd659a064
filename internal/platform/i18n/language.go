// Package i18n resolves dotted translation keys for the fixed set of
// languages the site is published in, and tracks a visitor's selected
// language.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code identifies one of the supported display languages.
type Code string

const (
	English  Code = "en"
	Chinese  Code = "zh"
	Hindi    Code = "hi"
	Khmer    Code = "km"
	Arabic   Code = "ar"
	Japanese Code = "ja"
)

// Base is the language used when nothing else was selected.
const Base = English

var supported = []Code{English, Chinese, Hindi, Khmer, Arabic, Japanese}

var labels = map[Code]string{
	English:  "English",
	Chinese:  "中文",
	Hindi:    "हिंदी",
	Khmer:    "ខ្មែរ",
	Arabic:   "العربية",
	Japanese: "日本語",
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(string(code)))
	}
	return tags
}

// Supported returns the supported languages in display order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// Valid reports whether c is a supported language.
func (c Code) Valid() bool {
	_, ok := labels[c]
	return ok
}

// String returns the language code.
func (c Code) String() string {
	return string(c)
}

// Label returns the language's name written in that language.
func (c Code) Label() string {
	if label, ok := labels[c]; ok {
		return label
	}
	return string(c)
}

// Tag returns the BCP 47 tag for c.
func (c Code) Tag() language.Tag {
	if !c.Valid() {
		return language.Make(string(Base))
	}
	return language.Make(string(c))
}

// Direction returns the HTML text direction for c.
func (c Code) Direction() string {
	if c == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Printer returns a message printer that formats numbers for c.
func (c Code) Printer() *message.Printer {
	return message.NewPrinter(c.Tag())
}

// FormatCount renders n with the digit grouping of c.
func (c Code) FormatCount(n int) string {
	return c.Printer().Sprintf("%d", n)
}

// Parse accepts a supported code or any BCP 47 tag whose base language is
// supported ("zh-CN" becomes zh).
func Parse(value string) (Code, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", false
	}
	if code := Code(value); code.Valid() {
		return code, true
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}
	code := Code(base.String())
	if !code.Valid() {
		return "", false
	}
	return code, true
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) (Code, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return "", false
	}
	return supported[index], true
}
