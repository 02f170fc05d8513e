// Package errors provides structured, coded errors for viewtree.
//
// Every error has a code (e.g., "VT201") registered with a category, a short
// message, a longer explanation and a documentation link. Errors wrap their
// cause, so errors.Is and errors.As work across package boundaries, and two
// errors with the same code match with errors.Is.
//
// # Error Categories
//
//   - construction: invalid arguments to a constructor (element queries,
//     view factories)
//   - reconcile: failures during a list update (factory errors, unknown view
//     variants)
//   - config: configuration loading and validation
//   - journal: event journal storage
//
// # Usage
//
//	err := errors.New(errors.CodeVariantNotFound).
//	    WithDetailf("view %q not found", kind).
//	    WithSuggestion("Register the variant in the ViewFactory map")
//
//	fmt.Print(err.Format())
package errors
