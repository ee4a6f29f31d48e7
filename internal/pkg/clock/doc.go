// Package clock provides a tiny time abstraction.
//
// Scheduling code (delivery delays, campaign speed windows, retry times)
// depends on the Clocker interface instead of time.Now so tests can pin the
// current time with Fixed.
package clock
