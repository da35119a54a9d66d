// Package assembly builds priced travel packages and their summaries.
//
// Assemble combines a hotel with an optional flight and transfer and
// computes the price breakdown. Summarize asks a chat model for one short
// presentation per package in a single request and substitutes a template
// sentence for every package the model does not cover.
package assembly
