// Package discover находит входные файлы по glob-шаблону.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ryabkov82/scimerge/internal/errors"
)

// Files возвращает отсортированный список файлов dir, подходящих под pattern.
// С recursive шаблон без "**" ищется во всех вложенных папках; без него
// "**" работает как обычная "*".
func Files(dir, pattern string, recursive bool) ([]string, error) {
	search := SearchGlob(dir, pattern, recursive)

	matches, err := doublestar.FilepathGlob(search)
	if err != nil {
		return nil, errors.InvalidArgument("bad pattern %q: %v", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w %s", errors.ErrNoFilesMatched, search)
	}

	sort.Strings(files)
	return files, nil
}

// SearchGlob собирает итоговый шаблон поиска.
func SearchGlob(dir, pattern string, recursive bool) string {
	pat := filepath.ToSlash(pattern)
	if recursive {
		if !strings.Contains(pat, "**") {
			pat = "**/" + pat
		}
	} else {
		for strings.Contains(pat, "**") {
			pat = strings.ReplaceAll(pat, "**", "*")
		}
	}
	return filepath.Join(filepath.Clean(dir), filepath.FromSlash(pat))
}
