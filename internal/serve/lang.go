package serve

import (
	"fmt"

	"golang.org/x/text/language"

	"atelier/internal/domain/content"
)

var supportedLangs = []language.Tag{
	language.English,
	language.Russian,
}

var langMatcher = language.NewMatcher(supportedLangs)

// matchLanguage picks the display language from Accept-Language, falling
// back to the configured default when the header is absent or unusable.
func matchLanguage(acceptLanguage, fallback string) language.Tag {
	tag, _ := language.MatchStrings(langMatcher, acceptLanguage, fallback)
	return tag
}

func isRussian(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "ru"
}

// readingLabel renders the reading-time estimate for display. The stored
// record keeps only the minute count; the string is per-request.
func readingLabel(tag language.Tag, readMin int) string {
	if readMin <= 0 {
		readMin = 1
	}
	if isRussian(tag) {
		return fmt.Sprintf("%d мин чтения", readMin)
	}
	return fmt.Sprintf("%d min read", readMin)
}

// categoryLabel localizes the Uncategorized sentinel; real categories pass
// through untouched.
func categoryLabel(tag language.Tag, label string) string {
	if label == content.Uncategorized && isRussian(tag) {
		return "Без категории"
	}
	return label
}
