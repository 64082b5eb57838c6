// Package errs holds the error vocabulary shared by the domain, the use cases
// and the adapters.
//
// Every kind pairs a sentinel with a struct carrying the offending parameter
// and an optional cause:
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory value is missing
//   - ValueIsInvalidError (ErrValueIsInvalid): a value breaks a domain rule
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a number is outside its bounds
//   - FormatError (ErrInvalidFormat): text such as "HH:MM-HH:MM" does not parse
//   - ObjectNotFoundError (ErrObjectNotFound): no courier, order or schedule with that key
//   - ObjectAlreadyExistsError (ErrObjectAlreadyExists): the key is taken, e.g. a scheduled date
//
// Unwrap returns the sentinel, so callers classify with errors.Is and reach the
// details with errors.As. The HTTP adapter turns the sentinels into status codes.
package errs
