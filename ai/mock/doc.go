// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Completer,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	completer := mock.NewMockCompleter()
//	completer.Response = `{"destination_city": "Antalya"}`
//
//	// Check call counts
//	count := completer.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns bag-of-words vectors, so texts sharing words score higher
//   - MockCompleter: Returns Response ("{}" by default) and records every prompt
//   - MockProvider: Aggregates mock embedder and completer
package mock
