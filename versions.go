package middlelayer

// Version is the version of the middlelayer service. This variable is
// overridden at build time using ldflags.
var Version = "0.3.0-dev"

// SideCarAPIVersion identifies compatibility between the service and the
// data side-car image.
//
// Backwards-incompatible changes to the side-car store API should result in
// a major version bump.
var SideCarAPIVersion = "1.0"
