package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, nil, *JSONObject, or JSONArray.
type JSONValue interface{}

// JSONObject is a JSON object that remembers the order in which its keys
// appeared in the source document.
type JSONObject struct {
	Keys   []string
	Values map[string]JSONValue
}

// NewJSONObject creates an empty ordered object.
func NewJSONObject() *JSONObject {
	return &JSONObject{Values: make(map[string]JSONValue)}
}

// Set stores value under key. A repeated key keeps its first position and
// takes the last value, matching encoding/json.
func (o *JSONObject) Set(key string, value JSONValue) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// Len returns the number of keys.
func (o *JSONObject) Len() int {
	return len(o.Keys)
}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// IntermediateRepresentation holds the parsed sample document.
type IntermediateRepresentation struct {
	Root JSONValue
}
