package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TitleStrategy derives a title for a video link. It returns false when it
// finds no usable text. Usable text is non-empty, whitespace-normalized and
// not a timestamp.
type TitleStrategy func(link *goquery.Selection) (string, bool)

// Markers used by listing pages in class names.
const (
	cardMarker          = "VideoCard"
	titleSelector       = `[class*="title"], [class*="Title"]`
	descriptionSelector = `[class*="description"], [class*="Description"]`
)

var timestamp = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// IsTimestamp reports whether s is a bare duration label such as "1:23",
// "12:34" or "1:23:45".
func IsTimestamp(s string) bool {
	return timestamp.MatchString(strings.TrimSpace(s))
}

// DefaultTitleStrategies returns the title fallback chain in the order it is
// tried.
func DefaultTitleStrategies() []TitleStrategy {
	return []TitleStrategy{
		CardTitle,
		AccessibleName,
		SiblingTitle,
		ParentText,
		LongestCardText,
	}
}

// CardTitle returns the text of the first title-labeled element in the
// link's video card, then the first description-labeled one.
func CardTitle(link *goquery.Selection) (string, bool) {
	card, ok := closestCard(link)
	if !ok {
		return "", false
	}
	if title, ok := firstUsable(card.Find(titleSelector)); ok {
		return title, true
	}
	return firstUsable(card.Find(descriptionSelector))
}

// AccessibleName returns the link's aria-label or title attribute.
func AccessibleName(link *goquery.Selection) (string, bool) {
	for _, attr := range []string{"aria-label", "title"} {
		if v, ok := link.Attr(attr); ok {
			if title, ok := usable(v); ok {
				return title, true
			}
		}
	}
	return "", false
}

// SiblingTitle scans the link's siblings for a title-labeled element.
func SiblingTitle(link *goquery.Selection) (string, bool) {
	var title string
	var found bool
	link.Siblings().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if sib.Is(titleSelector) {
			title, found = usable(sib.Text())
			if found {
				return false
			}
		}
		title, found = firstUsable(sib.Find(titleSelector))
		return !found
	})
	return title, found
}

// ParentText returns the text of the link's parent element.
func ParentText(link *goquery.Selection) (string, bool) {
	return usable(link.Parent().Text())
}

// LongestCardText returns the longest text node inside the link's video
// card, skipping timestamps.
func LongestCardText(link *goquery.Selection) (string, bool) {
	card, ok := closestCard(link)
	if !ok {
		return "", false
	}
	var longest string
	var longestLen int
	card.Find("*").AddBack().Contents().Each(func(_ int, node *goquery.Selection) {
		if node.Nodes[0].Type != html.TextNode {
			return
		}
		text, ok := usable(node.Text())
		if n := utf8.RuneCountInString(text); ok && n > longestLen {
			longest, longestLen = text, n
		}
	})
	return longest, longest != ""
}

// closestCard returns the nearest element (the link included) carrying the
// card marker as a block class. BEM elements such as VideoCard__title are
// parts of a card, not cards.
func closestCard(link *goquery.Selection) (*goquery.Selection, bool) {
	for s := link; s.Length() > 0; s = s.Parent() {
		class, _ := s.Attr("class")
		for _, c := range strings.Fields(class) {
			i := strings.Index(c, cardMarker)
			if i >= 0 && !strings.HasPrefix(c[i+len(cardMarker):], "__") {
				return s, true
			}
		}
	}
	return nil, false
}

func firstUsable(sel *goquery.Selection) (string, bool) {
	var title string
	var found bool
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title, found = usable(s.Text())
		return !found
	})
	return title, found
}

func usable(text string) (string, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || IsTimestamp(text) {
		return "", false
	}
	return text, true
}
