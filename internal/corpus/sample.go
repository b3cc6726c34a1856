package corpus

import _ "embed"

//go:embed sample.json
var sampleCorpus []byte

// Sample returns the built-in corpus used when no corpus file is configured.
func Sample() []byte {
	return sampleCorpus
}
