// Package document renders transcript text into a paginated PDF byte stream.
// Layout is fixed per renderer (page size, margins, font metrics), so the
// same text always produces byte-identical output.
package document
