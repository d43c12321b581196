// Package properties holds the string-keyed property map produced by a merge
// and the codec for the plain-text properties file format.
//
// # File Format
//
// One entry per logical line, with the key separated from the value by '=',
// ':' or whitespace:
//
//	# comment
//	! also a comment
//	db.url = jdbc:postgresql://localhost/app
//	db.user: app
//	greeting Hello \
//	         World
//	tab = a\tb
//	euro = €
//
// Lines ending with an odd number of backslashes continue on the next line.
// Placeholders such as ${other.key} are kept verbatim, they are never expanded.
//
// Decoding and encoding are delegated to github.com/magiconair/properties.
package properties
