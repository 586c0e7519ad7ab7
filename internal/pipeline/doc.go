// Package pipeline implements the extended-markdown transformation pipeline.
//
// Stages, in order:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark, raw HTML passed through
//   - Parsing into a golang.org/x/net/html tree
//   - Comment-marker recognition: <!-- ::name --> and
//     <!-- ::start:name -->...<!-- ::end:name --> become component wrappers
//   - Construct dispatch: tabs and framework panels rewrite their wrappers
//   - Heading collection: ids assigned, table-of-contents records gathered
//   - Optional chroma highlighting and .md link rewriting
//   - Serialization
//
// Every tree stage is synchronous and never fails. Malformed annotations,
// unbalanced block markers and unknown constructs degrade to passthrough
// and are reported as Diagnostics.
package pipeline
