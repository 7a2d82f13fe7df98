package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a list of strings persisted as a JSON array in a text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", value)
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// GormDataType implements schema.GormDataTypeInterface.
func (StringList) GormDataType() string {
	return "text"
}
