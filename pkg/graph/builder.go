package graph

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/contribgraph/backend/pkg/contrib"
)

// ContributorGroup buckets a contribution description into
// [0, ContributorGroups). It uses XXH64 with seed 0 so the same text lands
// in the same bucket in every process.
func ContributorGroup(what string) int {
	return int(xxhash.Sum64String(what) % ContributorGroups)
}

// TopicKey is the identity of a topic token: trimmed and lowercased.
func TopicKey(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// SplitTopics splits a raw topic cell on commas, trimming tokens and
// dropping empty ones. An empty cell or the "nan" placeholder has no
// topics. Repeated tokens are kept.
func SplitTopics(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil
	}

	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Builder accumulates records into a Graph. Contributor ids come from one
// counter shared by all records added, so records must be added in a fixed
// order for ids to be stable. A Builder is not safe for concurrent use.
type Builder struct {
	contributors int
	topicIDs     map[string]string
	graph        Graph
}

func NewBuilder() *Builder {
	return &Builder{
		topicIDs: make(map[string]string),
		graph: Graph{
			Nodes: []Node{},
			Links: []Link{},
		},
	}
}

// Add appends the nodes and links derived from rec. Records without a
// valid who are ignored and do not consume an id.
func (b *Builder) Add(rec contrib.Record) {
	if !contrib.IsValidWho(rec.Who) {
		return
	}

	node := &ContributorNode{
		ID:         contributorIDPrefix + strconv.Itoa(b.contributors),
		Type:       NodeTypeContributor,
		Name:       rec.Who,
		What:       rec.What,
		TopicText:  rec.TopicsRaw,
		Provenance: rec.Provenance,
		Group:      ContributorGroup(rec.What),
	}
	b.contributors++
	b.graph.Nodes = append(b.graph.Nodes, node)

	for _, token := range SplitTopics(rec.TopicsRaw) {
		b.graph.Links = append(b.graph.Links, Link{
			Source:   node.ID,
			Target:   b.topicID(token),
			What:     rec.What,
			Strength: LinkStrength,
		})
	}
}

// topicID returns the id for token, creating its node on first sight.
func (b *Builder) topicID(token string) string {
	key := TopicKey(token)
	if id, ok := b.topicIDs[key]; ok {
		return id
	}

	seen := len(b.topicIDs)
	id := topicIDPrefix + strconv.Itoa(seen)
	b.graph.Nodes = append(b.graph.Nodes, &TopicNode{
		ID:    id,
		Type:  NodeTypeTopic,
		Name:  strings.TrimSpace(token),
		Group: seen%TopicGroups + TopicGroupBase,
	})
	b.topicIDs[key] = id
	return id
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return &b.graph
}

// Build derives the graph of records, walking provenances in
// contrib.Provenances order and each set in row order.
func Build(records contrib.Records) *Graph {
	b := NewBuilder()
	for _, p := range contrib.Provenances {
		for _, rec := range records.Get(p) {
			b.Add(rec)
		}
	}
	return b.Graph()
}
