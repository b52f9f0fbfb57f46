// Package render is the upload transform: raw image bytes plus a declared
// media type in, the canonical multi-resolution asset set out.
//
// Raster inputs are decoded once and scaled onto transparent square canvases
// with aspect ratio preserved and content centered; vector inputs are
// rasterized directly at each target resolution. Every render is encoded as
// PNG regardless of the input format. Renders for the individual resolutions
// run concurrently; a single failure fails the whole upload so a partial size
// set can never escape this package.
//
// The decoding capability is the Rasterizer interface. Only the CLI process
// constructs one; the daemon receives finished asset sets over RPC.
package render
