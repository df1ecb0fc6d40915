package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but lacks the required privilege.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure whose details must not leak to the caller.
var ErrInternal = errors.New("internal error")

// ErrInvalidTransactionType indicates a transaction type outside DEPOSIT/WITHDRAWAL.
var ErrInvalidTransactionType = errors.New("invalid transaction type")

// ErrInsufficientFunds indicates a withdrawal larger than the current derived balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrClientRestricted indicates the client is blacklisted and may not move funds.
var ErrClientRestricted = errors.New("client is restricted")
