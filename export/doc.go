// Package export renders planned travel packages as a printable PDF.
package export
