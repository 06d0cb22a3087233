// Package metadata turns an on-disk Bilibili download tree into seasons and
// episodes.
//
// A download folder holds one directory per season, and each season holds
// one bundle directory per episode:
//
//	<root>/<season>/<episode>/entry.json
//	<root>/<season>/<episode>/<type_tag>/video.m4s
//	<root>/<season>/<episode>/<type_tag>/audio.m4s
//	<root>/<season>/<episode>/<language>/<subtitle>
//
// The Resolver reads entry.json descriptors, parses episode identities, and
// returns sorted, immutable Season values. It never writes to the filesystem.
package metadata
