// Package bot drives one game character over a conn.Conn: the version
// handshake, login, character select, action verbs with client-side
// pacing, passive event hooks and queries over the folded world state.
package bot
