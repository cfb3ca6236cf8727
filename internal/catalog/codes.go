package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"catalog-service/internal/models"
)

// FallbackAcronym is used when a category yields no usable letters
const FallbackAcronym = "PRD"

const codeDigits = 4

// AssignCodes returns a copy of products with a display code set on every item.
// Codes have the form ACR-NNNN, and repeats of the same base within the batch
// get a letter suffix (-A, -B, ... -Z, -AA, ...). The result depends only on
// the batch content and order.
func AssignCodes(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	collisions := make(map[string]int, len(out))
	used := make(map[string]struct{}, len(out))

	for i := range out {
		base := baseCode(out[i], i)
		code := base
		if n, seen := collisions[base]; seen {
			for {
				n++
				code = base + "-" + letterSuffix(n)
				if _, taken := used[code]; !taken {
					break
				}
			}
			collisions[base] = n
		} else {
			collisions[base] = 0
		}
		used[code] = struct{}{}
		out[i].Code = code
	}
	return out
}

func baseCode(p models.Product, index int) string {
	num := firstDigitRun(p.ID.Value)
	if num == "" {
		num = strconv.Itoa(index + 1)
	}
	if len(num) < codeDigits {
		num = strings.Repeat("0", codeDigits-len(num)) + num
	}
	return fmt.Sprintf("%s-%s", CategoryAcronym(p.Category), num)
}

// firstDigitRun returns the first run of ASCII digits in s without leading
// zeros ("0" for an all-zero run), or "" when s has no digits.
func firstDigitRun(s string) string {
	start := strings.IndexFunc(s, isASCIIDigit)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s) && isASCIIDigit(rune(s[end])) {
		end++
	}
	run := strings.TrimLeft(s[start:end], "0")
	if run == "" {
		return "0"
	}
	return run
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// CategoryAcronym derives the short code prefix for a category label.
// A single word contributes its first three letters; several words contribute
// the first character of each of the first three words.
func CategoryAcronym(category string) string {
	words := strings.Fields(category)
	if len(words) == 0 {
		return FallbackAcronym
	}

	var b strings.Builder
	if len(words) == 1 {
		n := 0
		for _, r := range words[0] {
			if !unicode.IsLetter(r) {
				continue
			}
			b.WriteRune(r)
			n++
			if n == 3 {
				break
			}
		}
		if b.Len() == 0 {
			return FallbackAcronym
		}
	} else {
		for i, w := range words {
			if i == 3 {
				break
			}
			for _, r := range w {
				b.WriteRune(r)
				break
			}
		}
	}
	// Casers carry state; one per call keeps this safe for concurrent use.
	return cases.Upper(language.Und).String(b.String())
}

// letterSuffix maps 1 -> A, 26 -> Z, 27 -> AA, 28 -> AB and so on
func letterSuffix(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
