package repository

import "qkart/models"

type duplicateError struct{ cause error }

func errDuplicate(cause error) error { return duplicateError{cause: cause} }

func (e duplicateError) Error() string { return e.cause.Error() }

func (e duplicateError) Is(target error) bool { return target == models.ErrDuplicate }

func (e duplicateError) Unwrap() error { return e.cause }
