// Package generation provides the interface and error taxonomy for
// interacting with external AI/LLM services for content generation. It
// abstracts the details of provider API integration (OpenAI, Gemini),
// allowing the worker to enrich words and compose essays without coupling
// to a specific external service.
package generation
