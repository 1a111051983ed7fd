// Package model defines the normalized request/response contract between
// agents and language-model providers, plus a deterministic scripted model
// for tests and offline runs. Provider adapters live in subpackages
// (openai, anthropic).
package model
