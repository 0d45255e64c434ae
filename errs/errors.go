package errs

import (
	"errors"
	"fmt"
)

// Kind roots. Every specific sentinel below wraps exactly one of these, so
// callers can classify any error from this module with errors.Is:
//
//	if errors.Is(err, errs.ErrInvalidData) { ... } // bad construction input
//	if errors.Is(err, errs.ErrOutOfRange)  { ... } // bad query input
//	if errors.Is(err, errs.ErrBadFit)      { ... } // regression failure
var (
	// ErrInvalidData indicates malformed, insufficient or contradictory input
	// at construction or fitting time.
	ErrInvalidData = errors.New("invalid input data")

	// ErrOutOfRange indicates an out-of-domain query input, such as a
	// negative or non-finite field strength. Query inputs are never silently
	// clamped.
	ErrOutOfRange = errors.New("query input out of range")

	// ErrBadFit indicates an ill-conditioned or underdetermined regression.
	ErrBadFit = errors.New("coefficient fit failed")
)

// Data errors.
var (
	// ErrTooFewPoints indicates fewer than two distinct measurement points.
	ErrTooFewPoints = data("fewer than two distinct measurement points")

	// ErrLengthMismatch indicates paired measurement slices of unequal length.
	ErrLengthMismatch = data("measurement slices have unequal length")

	// ErrNonFiniteValue indicates a NaN or infinite measurement value.
	ErrNonFiniteValue = data("non-finite measurement value")

	// ErrNegativeMeasurement indicates a measurement value below zero where
	// only non-negative values are physical.
	ErrNegativeMeasurement = data("negative measurement value")

	// ErrConflictingPoint indicates two measurement points sharing the same
	// independent value but carrying different dependent values.
	ErrConflictingPoint = data("duplicate independent value with conflicting measurements")

	// ErrFillFactor indicates an iron fill factor outside (0, 1].
	ErrFillFactor = data("iron fill factor outside (0, 1]")

	// ErrNotMonotonic indicates a measurement set whose permeability trend
	// cannot be made monotonic.
	ErrNotMonotonic = data("permeability trend cannot be established")

	// ErrUnsortedKnots indicates spline knot positions that are not strictly
	// increasing.
	ErrUnsortedKnots = data("knot positions not strictly increasing")
)

// Range errors.
var (
	// ErrNegativeInput indicates a negative evaluation input.
	ErrNegativeInput = rng("negative evaluation input")

	// ErrNonFiniteInput indicates a NaN or infinite evaluation input.
	ErrNonFiniteInput = rng("non-finite evaluation input")
)

// Fit errors.
var (
	// ErrTooFewMeasurements indicates fewer measurements than fit unknowns.
	ErrTooFewMeasurements = fit("fewer measurements than unknowns")

	// ErrSingularSystem indicates collinear basis columns, e.g. all
	// measurements taken at one frequency and one amplitude.
	ErrSingularSystem = fit("singular or ill-conditioned regression system")

	// ErrNegativeCoefficients indicates data that contradicts the loss law:
	// the unconstrained fit drives every coefficient below zero.
	ErrNegativeCoefficients = fit("fit yields no non-negative coefficients")
)

// Material file errors (data kind).
var (
	// ErrInvalidMagicNumber indicates a payload that is not a material file.
	ErrInvalidMagicNumber = data("invalid material file magic number")

	// ErrInvalidHeaderSize indicates a truncated material file header.
	ErrInvalidHeaderSize = data("invalid material file header size")

	// ErrInvalidCompression indicates an unknown compression type flag.
	ErrInvalidCompression = data("invalid compression type")

	// ErrTruncatedFile indicates index or payload bytes beyond the end of
	// the material file.
	ErrTruncatedFile = data("material file truncated")

	// ErrChecksumMismatch indicates material file corruption.
	ErrChecksumMismatch = data("material file checksum mismatch")

	// ErrInvalidRecord indicates a malformed material record payload.
	ErrInvalidRecord = data("malformed material record")

	// ErrDuplicateMaterial indicates two materials with the same name (or
	// colliding name hashes) added to one encoder.
	ErrDuplicateMaterial = data("duplicate material name")

	// ErrMaterialNotFound indicates a lookup for a name that is not present
	// in the material file.
	ErrMaterialNotFound = data("material not found")

	// ErrNoMaterialsAdded indicates Finish was called on an empty encoder.
	ErrNoMaterialsAdded = data("no materials added")
)

func data(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, msg)
}

func rng(msg string) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, msg)
}

func fit(msg string) error {
	return fmt.Errorf("%w: %s", ErrBadFit, msg)
}
