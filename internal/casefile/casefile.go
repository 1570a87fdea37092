// Package casefile loads the four entity collections from a JSON case file.
// The file format mirrors schemas.EntityCollections; producing it is the
// responsibility of whatever tool exports the investigation data.
package casefile

import (
	"fmt"
	"os"

	"github.com/caseboard/caseboard/api/schemas"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads and decodes a case file.
func Load(path string) (schemas.EntityCollections, error) {
	var cols schemas.EntityCollections

	raw, err := os.ReadFile(path)
	if err != nil {
		return cols, fmt.Errorf("failed to read case file: %w", err)
	}
	if err := json.Unmarshal(raw, &cols); err != nil {
		return cols, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}
	return cols, nil
}
