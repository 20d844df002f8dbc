package dto

import "github.com/dimitrije/portal-api/internal/document"

type DeletedResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

type SampleProjectListResponse struct {
	Projects []document.Record `json:"projects"`
	Total    int               `json:"total"`
}

type UserResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
}

// nonNil keeps a nil list from being stored as null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func setString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

func setStrings(fields map[string]any, key string, v *[]string) {
	if v != nil {
		fields[key] = nonNil(*v)
	}
}

type indexKey struct {
	name  string
	value *string
}

// blankKey names the first key sent as an empty string. The store rejects
// empty strings in secondary index keys.
func blankKey(keys ...indexKey) string {
	for _, k := range keys {
		if k.value != nil && *k.value == "" {
			return k.name
		}
	}
	return ""
}
