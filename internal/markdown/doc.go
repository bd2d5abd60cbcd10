// Package markdown renders markdown documents into the tagged segment stream.
// goldmark builds the AST; a dispatch table keyed by node kind classifies
// every span as literal markup or translatable prose. Service chains the
// renderer with the optimizer and emitter for whole files and batches.
package markdown
