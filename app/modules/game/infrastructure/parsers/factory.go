package parsers

import (
	"fmt"
	"strings"
)

// Factory picks a parser by file extension.
type Factory struct{}

// NewFactory creates a new parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns a parser for the given file name.
func (f *Factory) GetParser(fileName string) (Parser, error) {
	fileName = strings.ToLower(fileName)

	switch {
	case strings.HasSuffix(fileName, ".csv"):
		return NewCSVParser(), nil
	case strings.HasSuffix(fileName, ".xlsx"):
		return NewXLSXParser(), nil
	}
	return nil, fmt.Errorf("unsupported file type: %s (must be .csv or .xlsx)", fileName)
}
