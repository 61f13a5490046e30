// Package classify decides how a serving endpoint should be treated by
// schema detection. Classification is pure: same metadata in, same type out
package classify

import (
	"strings"

	"stencil/internal/core/normalize"
)

// EndpointType is the detection category for a serving endpoint
type EndpointType string

// Endpoint categories on the wire
const (
	// ChatModel endpoints accept the fixed chat-completions contract and
	// need no per-endpoint schema lookup
	ChatModel EndpointType = "chat_model"

	// CustomModel endpoints are backed by a registered model whose input
	// signature can be fetched from the registry
	CustomModel EndpointType = "custom_model"

	// Unknown endpoints get the deterministic fallback payload
	Unknown EndpointType = "unknown"
)

// vocabulary is the ordered chat keyword list; first match wins
// matching runs on folded names so case, width, and diacritics never matter
var vocabulary = []string{
	"chat",
	"gpt",
	"claude",
	"llama",
	"mistral",
	"mixtral",
	"gemma",
	"dbrx",
	"instruct",
	"assistant",
}

// Vocabulary returns a copy of the ordered keyword list for introspection
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Metadata is the slice of endpoint metadata classification consumes
type Metadata struct {
	// Name is the serving endpoint name as listed by the control plane
	Name string

	// ModelName and ModelVersion identify the registered model behind the
	// endpoint when there is one. Both must be set for the reference to count
	ModelName    string
	ModelVersion string
}

// Classifier folds names and applies the rules in order
type Classifier struct {
	folder *normalize.Folder
}

// New constructs a Classifier
func New() *Classifier { return &Classifier{folder: normalize.New()} }

// Classify applies the rules in order
// 1 a complete registered-model reference wins
// 2 a chat keyword in the folded endpoint name
// 3 otherwise unknown
func (c *Classifier) Classify(m Metadata) EndpointType {
	if m.ModelName != "" && m.ModelVersion != "" {
		return CustomModel
	}

	folded := c.folder.Fold(m.Name)
	if folded != "" {
		for _, kw := range vocabulary {
			if strings.Contains(folded, kw) {
				return ChatModel
			}
		}
	}

	return Unknown
}
