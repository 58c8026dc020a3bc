package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainNode     = "jasmir/node/v1"
	DomainDocument = "jasmir/document/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// NodeID computes the content-addressed ID of a lowered record.
// Two records get the same ID exactly when their canonical JSON is equal,
// positions included.
func NodeID(n Node) (string, error) {
	canonical, err := MarshalCanonical(n)
	if err != nil {
		return "", fmt.Errorf("NodeID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainNode, canonical), nil
}

// DocumentID computes the ID of an ordered sequence of records, such as
// everything lowered from one input file.
func DocumentID(nodes []Node) (string, error) {
	items := make([]any, len(nodes))
	for i, n := range nodes {
		tree, err := Tree(n)
		if err != nil {
			return "", fmt.Errorf("DocumentID: node[%d]: %w", i, err)
		}
		items[i] = tree
	}
	canonical, err := MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("DocumentID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}

// MustNodeID is like NodeID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNodeID(n Node) string {
	id, err := NodeID(n)
	if err != nil {
		panic(err)
	}
	return id
}
