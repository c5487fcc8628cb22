package utils

import (
	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// ToJSON encodes an audit payload; nil or unencodable values give nil.
func ToJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
