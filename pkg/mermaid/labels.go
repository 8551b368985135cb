package mermaid

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Alrudin/fromto/pkg/errors"
)

// labelFile is the on-disk TOML shape for function label overrides:
//
//	[functions]
//	sysk = "Syslog koncernet"
//	idx = "Indexer"
type labelFile struct {
	Functions map[string]string `toml:"functions"`
}

// LoadLabels reads a TOML label map from path and merges its entries over
// [DefaultFunctionLabels]. File entries win on conflicting codes; codes are
// lowercased so lookups stay case-insensitive.
func LoadLabels(path string) (map[string]string, error) {
	var lf labelFile
	if _, err := toml.DecodeFile(path, &lf); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "label map not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "load label map %s", path)
	}

	labels := DefaultFunctionLabels()
	for code, name := range lf.Functions {
		labels[strings.ToLower(code)] = name
	}
	return labels, nil
}
