// Package layers renders declarative annotation layers onto a raster
// drawing surface.
//
// A layer is a small JSON-friendly shape description: a type tag plus
// geometry and style fields. The renderer translates each layer into
// drawing calls against a [canvas2d.Context], simulating effects the
// surface does not provide natively (spreadable drop shadows, blur-blend
// compositing) and scaling geometry between a design-time base resolution
// and the physical surface resolution.
//
// The same rendering path is used for the interactive surface, export
// targets and read-only viewers, so a layer list produces pixel-identical
// output everywhere. [Canvas] owns the bound surface, viewport state, an
// offscreen context pool, and a per-layer content-hash cache used to skip
// redundant redraw work.
//
// Rendering is single-threaded and synchronous. The only asynchronous
// element is image decoding: image layers show a placeholder until their
// source decodes, then a completion callback requests a fresh draw.
package layers
