// Package logging provides the logging sink injected into every tancalc
// component. It abstracts the underlying logging implementation so that
// components depend on the Logger interface only, with zerolog as the
// production backend and the standard library logger as an alternative.
package logging
