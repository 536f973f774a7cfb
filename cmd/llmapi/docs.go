package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/llmapi/docs.go -o docs`.
//
// @title           llmapi
// @version         1.0
// @description     HTTP API for listing, loading and prompting models served by a local model runner.
//
// @contact.name   llmapi maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
