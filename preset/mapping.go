package preset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// KeywordMapping assigns items carrying every one of Keywords to the custom type TypeName.
type KeywordMapping struct {
	Keywords []string
	TypeName string
}

// ParseMappings reads mapping lines of the form "Keyword1,Keyword2=TypeName". Blank lines and
// lines starting with ';' or '#' are ignored. Malformed lines are returned as errors alongside
// the mappings that did parse.
func ParseMappings(r io.Reader) ([]KeywordMapping, []error) {
	var (
		out  []KeywordMapping
		errs []error
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == ';' || text[0] == '#' {
			continue
		}
		keys, typeName, ok := strings.Cut(text, "=")
		typeName = strings.TrimSpace(typeName)
		keywords := lo.Compact(lo.Map(strings.Split(keys, ","), func(k string, _ int) string {
			return strings.TrimSpace(k)
		}))
		if !ok || typeName == "" || len(keywords) == 0 {
			errs = append(errs, fmt.Errorf("line %d: expected Keyword1,Keyword2=TypeName, got %q", line, text))
			continue
		}
		out = append(out, KeywordMapping{Keywords: lo.Uniq(keywords), TypeName: typeName})
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return out, errs
}

// sortMappings orders mappings by specificity, most keywords first. Ties keep file order.
func sortMappings(m []KeywordMapping) {
	slices.SortStableFunc(m, func(a, b KeywordMapping) int {
		return len(b.Keywords) - len(a.Keywords)
	})
}

// bestMatch returns the type name of the most specific mapping whose keywords are all present.
func bestMatch(mappings []KeywordMapping, keywords []string) (string, bool) {
	if len(keywords) == 0 {
		return "", false
	}
	m, ok := lo.Find(mappings, func(m KeywordMapping) bool {
		return lo.Every(keywords, m.Keywords)
	})
	return m.TypeName, ok
}

// loadMappingDir parses every .txt, .ini or extensionless file in dir, in name order.
func loadMappingDir(dir string) ([]KeywordMapping, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("read mappings: %w", err)}
	}

	var (
		out  []KeywordMapping
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".txt", ".ini", "":
		default:
			continue
		}
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m, parseErrs := ParseMappings(f)
		_ = f.Close()
		for _, pe := range parseErrs {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), pe))
		}
		out = append(out, m...)
	}
	sortMappings(out)
	return out, errs
}
