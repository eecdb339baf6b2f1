package api

// FindRequest is the JSON body of the find endpoint. Omitted fields
// select the defaults: search everything indexed, return only the item
// path, keep the engine's natural order, no result cap.
type FindRequest struct {
	Predicate      string   `json:"predicate"`
	Scopes         []string `json:"scopes,omitempty" description:"scope constants, e.g. kMDQueryScopeHome"`
	Attributes     []string `json:"attributes,omitempty"`
	SortAttributes []string `json:"sort_attributes,omitempty"`
	MaxResults     int      `json:"max_results,omitempty" description:"0 or negative means no cap"`
}

type FindResponse struct {
	Predicate string           `json:"predicate"`
	Items     []map[string]any `json:"items"`
	Count     int              `json:"count"`
}

type AttributeInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

type AttributesResponse struct {
	Attributes []AttributeInfo `json:"attributes"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
