// Package validator validates request structs.
//
// Usecases depend on the Validator interface; V10Validator implements it with
// go-playground/validator and adds the yaml and liquid rules used by
// recipient, letter and campaign documents.
package validator

// Validator validates a struct and returns a field keyed error on failure.
type Validator interface {
	Validate(data any) error
}
