package repo

import "encoding/json"

// jsonb columns hold string lists; empty lists are stored as NULL.

func marshalStringList(items []string) (interface{}, error) {
	if len(items) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalStringList(blob []byte) ([]string, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, err
	}
	return items, nil
}
