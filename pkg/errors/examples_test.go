package errors_test

import (
	"fmt"

	"github.com/procurelab/matchbook/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a schema error for a malformed field
	err := &errors.SchemaError{
		Field:   "total",
		Value:   "about a thousand",
		Message: "cannot be parsed as a number",
	}

	// Check error type
	if errors.IsSchemaError(err) {
		fmt.Println("Document failed normalization")
	}

	// Output: Document failed normalization
}

// Example_extractionError demonstrates extraction failure handling.
func Example_extractionError() {
	// Simulate an upstream extraction failure
	err := &errors.ExtractionError{
		Doc:     "invoice",
		Message: "model returned no candidates",
	}

	// Extraction failures are surfaced as errors, never as a
	// reconciliation verdict.
	if errors.IsExtractionError(err) {
		fmt.Println("Extraction failed - document never reached the engine")
	}

	// Output: Extraction failed - document never reached the engine
}

// Example_schemaErrorField shows how schema errors name the offending field.
func Example_schemaErrorField() {
	err := errors.NewSchemaError("items[1].quantity", -3, "must not be negative")
	fmt.Println(err.Error())

	// Output: schema violation in field items[1].quantity: must not be negative
}

// Example_errorWrapping demonstrates error wrapping patterns.
func Example_errorWrapping() {
	// Original error from the file system
	originalErr := fmt.Errorf("no such file or directory")

	// Wrap with IO error
	ioErr := errors.WrapIO("read", "invoice.json", originalErr)
	fmt.Println(ioErr.Error())

	// Output: IO error during read of invoice.json: no such file or directory
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	// Validate an engine option
	tolerance := -0.5
	if tolerance <= 0 {
		err := &errors.ValidationError{
			Field:   "tolerance",
			Value:   tolerance,
			Message: "must be greater than zero",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field tolerance: must be greater than zero
}
