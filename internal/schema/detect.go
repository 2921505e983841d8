package schema

import (
	"regexp"
	"strconv"
)

var subPrefix = regexp.MustCompile(`(?i)^sub(\d{1,3})_`)

// Clamp ограничивает n диапазоном [0, limit]; limit сам приводится к [0, MaxGroups].
func Clamp(n, limit int) int {
	limit = max(0, min(MaxGroups, limit))
	return max(0, min(limit, n))
}

// DetectGroupCount определяет число групп субподрядчиков в таблице.
// Имена колонок вида subN_ - основной признак; если их нет, число групп
// оценивается по ширине таблицы (неполная последняя группа не считается).
func DetectGroupCount(names []string, fallbackWidth, limit int) int {
	found := false
	highest := 0
	for _, name := range names {
		m := subPrefix.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = true
		highest = max(highest, n)
	}
	if found {
		return Clamp(highest, limit)
	}

	if fallbackWidth >= BaseWidth {
		return Clamp((fallbackWidth-BaseWidth)/GroupSize, limit)
	}
	return 0
}
