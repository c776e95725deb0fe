package cache

import "encoding/json"

// Both caches store JSON so a hit looks the same whichever backend served it:
// strings stay strings, structs come back as generic maps and slices.

func encode(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

func decode(data []byte) (interface{}, error) {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
