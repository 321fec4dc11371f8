// Package geo converts positional metadata values into decimal degrees.
//
// EXIF stores a coordinate as a sequence of rationals, normally
// degrees, minutes and seconds. ToDecimal folds any such sequence into a
// single float by summing value[n] / 60^n.
package geo
