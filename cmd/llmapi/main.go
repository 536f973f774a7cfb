package main

import (
	"os"

	"llmapi/internal/cli"
	"llmapi/internal/ingest"
	"llmapi/internal/ingest/tesseract"
	"llmapi/internal/runner"
)

func main() {
	os.Exit(cli.Execute(cli.Deps{
		NewRunner: func(baseURL string) (runner.Runner, error) {
			return runner.NewOllama(baseURL)
		},
		NewRecognizer: func(languages []string) ingest.Recognizer {
			return tesseract.New(languages...)
		},
	}, os.Args[1:]))
}
