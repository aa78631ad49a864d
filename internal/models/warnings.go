package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = source data quality.
type WarningCode string

const (
	WarnSourceWeightSum WarningCode = "W1003" // kept source weights do not add up to 100%
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
