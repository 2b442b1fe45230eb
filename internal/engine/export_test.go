package engine

// MaxSmoothingSteps exposes the settle bound to the external tests.
var MaxSmoothingSteps = maxSmoothingSteps
