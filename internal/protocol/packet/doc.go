// Package packet owns the message catalogue contract.
//
// Ownership boundary:
// - Message interface and Catalogue dispatch table
// - per-entry payload compression
// - compound field types shared by client and server messages
//
// Concrete messages live in packet/client (client-originated kinds) and
// packet/server (server-originated kinds); the two kind spaces are
// independent numbering domains.
package packet
