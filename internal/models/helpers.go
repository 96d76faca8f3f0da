package models

// StringPtr returns a pointer to the string value passed in
func StringPtr(s string) *string {
	return &s
}
