// Package config defines the shared sensor/map parameter set consumed by
// the splinemap and splinelocalizer packages.
//
// Fields are optional pointers so a caller can supply only the options it
// cares about; Get* accessors fall back to the reference defaults from the
// original spline-slam implementation. There is no file or environment
// parsing here — configuration is constructed directly by the host
// application, which owns sensor wiring and process configuration.
package config
