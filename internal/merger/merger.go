package merger

import (
	"strings"

	"github.com/ryabkov82/scimerge/internal/config"
)

type FileMerger interface {
	MergeFiles(cfg *config.Config) (*Result, error)
}

// Result - итог запуска слияния.
type Result struct {
	OutputFiles  []string
	FileCount    int
	HeaderSource string
	RowCount     int64
}

type BaseMerger struct {
	// Headers - эталонный заголовок (первый непустой файл)
	Headers      []string
	HeaderSource string
}

// Init инициализирует базовые поля
func (bm *BaseMerger) Init() {
	bm.Headers = make([]string, 0)
	bm.HeaderSource = ""
}

// HeadersMatch сравнивает заголовки поэлементно без учета пробелов по краям.
func HeadersMatch(a, b []string) bool {
	return len(a) == len(b) && Divergence(a, b) < 0
}

// Divergence возвращает индекс первого расхождения заголовков или -1.
// Если один заголовок - префикс другого, расхождение на длине короткого.
func Divergence(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if strings.TrimSpace(a[i]) != strings.TrimSpace(b[i]) {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
