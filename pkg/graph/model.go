// Package graph derives the contributor/topic graph shown by the
// force-directed client from normalized contributor records.
package graph

import "github.com/contribgraph/backend/pkg/contrib"

type NodeType string

const (
	NodeTypeContributor NodeType = "contributor"
	NodeTypeTopic       NodeType = "topic"
)

const (
	// ContributorGroups is the number of presentation buckets contributors
	// are spread over; their groups are in [0, ContributorGroups).
	ContributorGroups = 10
	// Topic groups are in [TopicGroupBase, TopicGroupBase+TopicGroups).
	TopicGroupBase = 10
	TopicGroups    = 5

	LinkStrength = 1

	contributorIDPrefix = "contributor_"
	topicIDPrefix       = "topic_"
)

// Node is either a *ContributorNode or a *TopicNode.
type Node interface {
	NodeID() string
	NodeType() NodeType
}

// ContributorNode is emitted once per valid record.
type ContributorNode struct {
	ID         string             `json:"id"`
	Type       NodeType           `json:"type" jsonschema:"enum=contributor"`
	Name       string             `json:"name"`
	What       string             `json:"what"`
	TopicText  string             `json:"topic_text"`
	Provenance contrib.Provenance `json:"provenance" jsonschema:"enum=internal,enum=external"`
	Group      int                `json:"group" jsonschema:"minimum=0,maximum=9"`
}

func (n *ContributorNode) NodeID() string     { return n.ID }
func (n *ContributorNode) NodeType() NodeType { return NodeTypeContributor }

// TopicNode is emitted once per distinct topic key. Name keeps the casing
// of the first occurrence.
type TopicNode struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type" jsonschema:"enum=topic"`
	Name  string   `json:"name"`
	Group int      `json:"group" jsonschema:"minimum=10,maximum=14"`
}

func (n *TopicNode) NodeID() string     { return n.ID }
func (n *TopicNode) NodeType() NodeType { return NodeTypeTopic }

// Link connects a contributor to one of its topics.
type Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	What     string `json:"what"`
	Strength int    `json:"strength" jsonschema:"minimum=1,maximum=1"`
}

// Graph is the node/link document served to the visualization client.
// Node order is discovery order: each contributor is followed by the topics
// it introduced.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Contributors returns the contributor nodes in emission order.
func (g *Graph) Contributors() []*ContributorNode {
	var out []*ContributorNode
	for _, n := range g.Nodes {
		if c, ok := n.(*ContributorNode); ok {
			out = append(out, c)
		}
	}
	return out
}

// Topics returns the topic nodes in emission order.
func (g *Graph) Topics() []*TopicNode {
	var out []*TopicNode
	for _, n := range g.Nodes {
		if t, ok := n.(*TopicNode); ok {
			out = append(out, t)
		}
	}
	return out
}

// LinksFrom returns the links whose source is id.
func (g *Graph) LinksFrom(id string) []Link {
	var out []Link
	for _, l := range g.Links {
		if l.Source == id {
			out = append(out, l)
		}
	}
	return out
}
