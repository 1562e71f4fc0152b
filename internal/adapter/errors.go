package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoAccount is returned by Students when the backend answers 404,
	// meaning the wallet authenticated fine but no account row exists yet.
	ErrNoAccount = errors.New("no account for this wallet yet")

	// ErrNoContentAddress is returned by UploadToIPFS when the response maps
	// to no known content-address field.
	ErrNoContentAddress = errors.New("upload response carries no content address")
)
