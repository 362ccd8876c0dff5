// Package openai implements the generation.Generator interface against the
// OpenAI Chat Completions API, or any endpoint speaking the same protocol.
package openai
