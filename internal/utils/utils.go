package utils

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func GenerateID() string {
	return uuid.NewString()
}

// DatatypesJSONFrom marshals v for a jsonb column; nil stays SQL NULL.
func DatatypesJSONFrom(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
