// Package config defines the format-agnostic configuration model for the
// application: the list of compile jobs and the properties each one runs
// with, along with the Loader interface that produces it.
//
// Concrete loaders, such as the HCL one, live in separate packages.
package config
