// Package introspect wraps the external media tools behind a typed interface.
//
// The Introspector interface is the only way probes look inside a container:
// ffprobe supplies format, stream, and packet data, ffmpeg performs decode
// verification and seek checks, and mkvmerge supplies container-level
// metadata. Probes never parse tool output themselves; all wire parsing and
// corruption-signature classification happens here.
//
// Every method returns failures as values. A missing binary or unreadable
// file degrades to an error result the caller folds into a warning finding,
// never a crash.
package introspect
