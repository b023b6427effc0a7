package uploads

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 80

// FileName builds "{epoch-millis}-{slug}.{ext}" from an uploaded file name.
func FileName(now time.Time, original string) string {
	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(original, ext)

	name := strconv.FormatInt(now.UnixMilli(), 10) + "-" + Slugify(stem)
	if ext = sanitizeExt(ext); ext != "" {
		name += "." + ext
	}
	return name
}

// Slugify case-folds s, drops diacritics, turns whitespace runs into a single
// hyphen and removes everything outside [a-z0-9_-].
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastHyphen := true
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '.':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "file"
	}
	return slug
}

func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	var b strings.Builder
	for _, r := range ext {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() > 10 {
		return ""
	}
	return b.String()
}
