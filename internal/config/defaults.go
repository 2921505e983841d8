package config

// Значения по умолчанию
const (
	DefaultPattern        = "*.csv"
	DefaultTagColumn      = "file_id"
	DefaultTagWidth       = 4
	DefaultEncoding       = "utf-8-sig"
	DefaultOutputEncoding = "utf-8"
	DefaultMaxGroups      = 100
	DefaultHeaderRow      = 3
	DefaultLogLevel       = "info"
)

// GetDefaults возвращает значения по умолчанию в виде ключей koanf.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"pattern":         DefaultPattern,
		"tag_column":      DefaultTagColumn,
		"tag_width":       DefaultTagWidth,
		"encoding":        DefaultEncoding,
		"output_encoding": DefaultOutputEncoding,
		"recursive":       false,
		"pad_subs":        false,
		"strict":          false,
		"max_groups":      DefaultMaxGroups,
		"header_row":      DefaultHeaderRow,
		"csv_header_row":  0,
		"sheet":           "",
		"raw_values":      false,
		"log_level":       DefaultLogLevel,
	}
}
