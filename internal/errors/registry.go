package errors

import "sort"

// Registered error codes.
const (
	CodeMissingQuery    = "VT101"
	CodeEmptyVariants   = "VT102"
	CodeEmptyKey        = "VT103"
	CodeInvalidRoute    = "VT104"
	CodeItemFactory     = "VT201"
	CodeNilItemView     = "VT202"
	CodeVariantNotFound = "VT203"
	CodeConfigParse     = "VT301"
	CodeConfigInvalid   = "VT302"
	CodeJournalOpen     = "VT401"
	CodeJournalWrite    = "VT402"
	CodeSessionNotFound = "VT403"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Construction Errors (VT100-VT199)
	// ============================================

	CodeMissingQuery: {
		Category:   CategoryConstruction,
		Message:    "At least one argument required",
		Suggestion: "Pass a query such as \"div.card#main\" or a constructor",
		DocURL:     "https://viewtree.dev/docs/errors/VT101",
	},
	CodeEmptyVariants: {
		Category:   CategoryConstruction,
		Message:    "views must be a map of variants",
		Suggestion: "Pass a map from discriminant value to view constructor",
		DocURL:     "https://viewtree.dev/docs/errors/VT102",
	},
	CodeEmptyKey: {
		Category:   CategoryConstruction,
		Message:    "key must be a non-empty string",
		Suggestion: "Name the item field that selects the view variant",
		DocURL:     "https://viewtree.dev/docs/errors/VT103",
	},
	CodeInvalidRoute: {
		Category: CategoryConstruction,
		Message:  "Router view has an unsupported type",
		DocURL:   "https://viewtree.dev/docs/errors/VT104",
	},

	// ============================================
	// Reconcile Errors (VT200-VT299)
	// ============================================

	CodeItemFactory: {
		Category: CategoryReconcile,
		Message:  "Item view factory failed",
		DocURL:   "https://viewtree.dev/docs/errors/VT201",
	},
	CodeNilItemView: {
		Category:   CategoryReconcile,
		Message:    "Item view factory returned a nil view",
		Suggestion: "Return an error from the factory instead of a nil view",
		DocURL:     "https://viewtree.dev/docs/errors/VT202",
	},
	CodeVariantNotFound: {
		Category:   CategoryReconcile,
		Message:    "View variant not found",
		Suggestion: "Register the variant in the ViewFactory map",
		DocURL:     "https://viewtree.dev/docs/errors/VT203",
	},

	// ============================================
	// Config Errors (VT300-VT399)
	// ============================================

	CodeConfigParse: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check viewtree.json / viewtree.yaml syntax",
		DocURL:     "https://viewtree.dev/docs/errors/VT301",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://viewtree.dev/docs/errors/VT302",
	},

	// ============================================
	// Journal Errors (VT400-VT499)
	// ============================================

	CodeJournalOpen: {
		Category:   CategoryJournal,
		Message:    "Cannot open event journal",
		Suggestion: "Make sure no other viewtree process holds the journal file",
		DocURL:     "https://viewtree.dev/docs/errors/VT401",
	},
	CodeJournalWrite: {
		Category: CategoryJournal,
		Message:  "Cannot write to event journal",
		DocURL:   "https://viewtree.dev/docs/errors/VT402",
	},
	CodeSessionNotFound: {
		Category: CategoryJournal,
		Message:  "Journal session not found",
		DocURL:   "https://viewtree.dev/docs/errors/VT403",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
