package ports

// RatingsSource supplies one raw rating set from some medium (CSV file,
// XLSX sheet, JSON document, HTTP form). Values are untyped at this stage;
// the scoring validator owns the type and range rules.
type RatingsSource interface {
	// Read returns the item code -> raw value mapping.
	Read() (map[string]any, error)

	// Name identifies the source for logs and error messages.
	Name() string
}
