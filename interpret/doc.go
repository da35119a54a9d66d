// Package interpret turns a free-text travel request into a core.TravelIntent.
//
// Two interchangeable strategies implement Interpreter:
//   - KeywordInterpreter scans the normalized request for known places,
//     style words, time-of-day words and flight/transfer words.
//   - LLMInterpreter asks a chat model for a fixed JSON schema and validates
//     every field of the reply, falling back to DefaultIntent on failure.
//
// Neither strategy returns an error. Every intent they produce carries a
// known destination airport, an origin airport and a travel style from the
// closed set.
package interpret
