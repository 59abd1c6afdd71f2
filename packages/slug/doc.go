// Package slug turns free-text labels into filesystem and URL safe names.
//
// It provides:
//   - Slugify, which reduces any unicode string to lowercase ASCII letters,
//     digits and single hyphens
//   - GenerateFilename, which joins a scenario label and a capture label into
//     the stem of a screenshot file name
//
// Known symbols are spelled out through a fixed table before anything is
// discarded, so "unicode ♥ is ☢" becomes "unicode-love-is-radioactive".
package slug
