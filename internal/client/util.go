package client

import (
	"encoding/json"
	"sort"

	"supanos/internal/model"
)

func jsonValue(v interface{}) (model.JSON, error) {
	if raw, ok := v.(model.JSON); ok {
		return raw, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return model.JSON(b), nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
