package graphops

import "errors"

var (
	// ErrGraphNil indicates a nil graph argument.
	ErrGraphNil = errors.New("graphops: graph is nil")
	// ErrInvalidOrder indicates a contiguity order below 1.
	ErrInvalidOrder = errors.New("graphops: order must be >= 1")
	// ErrSizeMismatch indicates graphs over different numbers of observations.
	ErrSizeMismatch = errors.New("graphops: graphs differ in number of observations")
	// ErrNoGraphs indicates an empty argument list.
	ErrNoGraphs = errors.New("graphops: no graphs supplied")
	// ErrUnknownPolicy indicates an unsupported symmetrization policy.
	ErrUnknownPolicy = errors.New("graphops: unknown symmetrization policy")
	// ErrValuesLength indicates a value vector whose length differs from NumObs.
	ErrValuesLength = errors.New("graphops: values length mismatch")
)
