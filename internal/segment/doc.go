// Package segment implements the length-prefixed tagged encoding that carries
// literal and translatable text through the converter.
//
// A segment is written as <tag><decimal byte length>:<payload>. Segments are
// concatenated without separators; a bare newline between two segments marks
// the end of a source line. Because every boundary comes from a length field,
// payloads may contain newlines, colons or tag bytes.
package segment
