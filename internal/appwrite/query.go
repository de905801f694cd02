package appwrite

import "encoding/json"

// Query mirrors the JSON query objects the Appwrite Databases API accepts in
// its `queries[]` parameter.
type Query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

// Equal filters documents whose attribute equals the given value.
func Equal(attribute string, value interface{}) Query {
	return Query{Method: "equal", Attribute: attribute, Values: []interface{}{value}}
}

// OrderDesc sorts results by attribute, newest/highest first.
func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

// Limit caps the number of returned documents.
func Limit(n int) Query {
	return Query{Method: "limit", Values: []interface{}{n}}
}

func (q Query) encode() (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
