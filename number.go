package novelgrab

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// NoChapterNumber is returned by ChapterNumber for text without a number.
// It sorts after any real chapter number.
const NoChapterNumber = math.MaxInt32

// MaxChapterJump is the largest gap between consecutive chapter numbers
// accepted by SortByChapterNumber without a warning.
const MaxChapterJump = 50

// chapterNumberPatterns are evaluated in order; the first match wins.
// Each pattern captures the number in group 1.
var chapterNumberPatterns = []struct {
	re    *regexp.Regexp
	parse func(string) (int, bool)
}{
	{regexp.MustCompile(`第\s*([0-9０-９]+)\s*[章回节節话話]`), parseDigits},
	{regexp.MustCompile(`第\s*([零〇一二两兩三四五六七八九十百千萬万]+)\s*[章回节節话話]`), parseChineseNumeral},
	{regexp.MustCompile(`(?i)\bchapter\s*(\d+)`), parseDigits},
	{regexp.MustCompile(`(?i)\bch\.?\s*(\d+)`), parseDigits},
	{regexp.MustCompile(`^\s*(\d+)`), parseDigits},
}

// ChapterNumber extracts a chapter number from link text such as "第12章",
// "第三章", "Chapter 7", "Ch.7", or "7. Title". It returns NoChapterNumber
// when no pattern matches.
func ChapterNumber(text string) int {
	for _, p := range chapterNumberPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, ok := p.parse(m[1]); ok {
			return n
		}
	}
	return NoChapterNumber
}

func parseDigits(s string) (int, bool) {
	// Fold full-width digits.
	s = strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return r - '０' + '0'
		}
		return r
	}, s)
	n, err := strconv.Atoi(s)
	if err != nil || n >= NoChapterNumber {
		return 0, false
	}
	return n, true
}

var chineseDigits = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '两': 2, '兩': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var chineseUnits = map[rune]int{'十': 10, '百': 100, '千': 1000}

// parseChineseNumeral converts numerals such as 十二, 一百零五, or
// 两千三百 to integers.
func parseChineseNumeral(s string) (int, bool) {
	var total, section, number int
	for _, r := range s {
		if d, ok := chineseDigits[r]; ok {
			number = d
			continue
		}
		if u, ok := chineseUnits[r]; ok {
			if number == 0 && u == 10 {
				number = 1
			}
			section += number * u
			number = 0
			continue
		}
		if r == '万' || r == '萬' {
			section += number
			total += section * 10000
			section, number = 0, 0
			continue
		}
		return 0, false
	}
	return total + section + number, true
}

// SortWarningKind classifies a SortWarning.
type SortWarningKind int

const (
	// SortCollision means two links carry the same chapter number.
	SortCollision SortWarningKind = iota
	// SortJump means consecutive chapter numbers are far apart.
	SortJump
)

// SortWarning flags a suspicious ordering found while sorting links.
type SortWarning struct {
	Kind   SortWarningKind
	Number int
	Prev   int // previous number, for SortJump
	URL    string
}

func (w SortWarning) String() string {
	switch w.Kind {
	case SortCollision:
		return fmt.Sprintf("chapter number %d appears more than once (%s)", w.Number, w.URL)
	case SortJump:
		return fmt.Sprintf("chapter number jumps from %d to %d (%s)", w.Prev, w.Number, w.URL)
	}
	return fmt.Sprintf("chapter %d: %s", w.Number, w.URL)
}

// SortByChapterNumber returns the links stably sorted by the chapter number
// in their text, unnumbered links last. When two links carry the same number
// (volume resets, duplicated labels) the numbering cannot be trusted and the
// original order is returned unchanged along with collision warnings.
// Large jumps between consecutive numbers are reported but do not prevent
// sorting. The input slice is never modified.
func SortByChapterNumber(links []ChapterLink) ([]ChapterLink, []SortWarning) {
	out := make([]ChapterLink, len(links))
	copy(out, links)

	nums := make(map[string]int, len(links))
	seen := make(map[int]bool, len(links))
	var warnings []SortWarning
	for _, l := range links {
		n := ChapterNumber(l.Text)
		nums[l.URL] = n
		if n == NoChapterNumber {
			continue
		}
		if seen[n] {
			warnings = append(warnings, SortWarning{Kind: SortCollision, Number: n, URL: l.URL})
		}
		seen[n] = true
	}
	if len(warnings) > 0 {
		return out, warnings
	}

	sort.SliceStable(out, func(i, j int) bool {
		return nums[out[i].URL] < nums[out[j].URL]
	})

	prev := NoChapterNumber
	for _, l := range out {
		n := nums[l.URL]
		if n == NoChapterNumber {
			break
		}
		if prev != NoChapterNumber && n-prev > MaxChapterJump {
			warnings = append(warnings, SortWarning{Kind: SortJump, Number: n, Prev: prev, URL: l.URL})
		}
		prev = n
	}
	return out, warnings
}
