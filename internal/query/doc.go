// Package query turns the optional query parameters of the book listing
// route into a [models.FilterSet].
//
// Recognized parameters:
//
//	description  case-insensitive substring match on the description
//	book         the collection contains the given title
//	booktitle    alias of book; ignored when book is present
//	title        exact title match
//
// Empty values are omitted and unknown parameters are ignored.
package query
