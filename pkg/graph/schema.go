package graph

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the JSON document a Graph encodes to. Clients use it to
// check they still agree with the field names and shape of the payload.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}

	contributor := r.Reflect(&ContributorNode{})
	topic := r.Reflect(&TopicNode{})
	link := r.Reflect(&Link{})
	for _, s := range []*jsonschema.Schema{contributor, topic, link} {
		s.Version = ""
	}

	props := jsonschema.NewProperties()
	props.Set("nodes", &jsonschema.Schema{
		Type:  "array",
		Items: &jsonschema.Schema{OneOf: []*jsonschema.Schema{contributor, topic}},
	})
	props.Set("links", &jsonschema.Schema{
		Type:  "array",
		Items: link,
	})

	return &jsonschema.Schema{
		Version:    jsonschema.Version,
		Title:      "Contributor graph",
		Type:       "object",
		Properties: props,
		Required:   []string{"nodes", "links"},
	}
}
