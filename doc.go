// Package flatfield calibrates raw radiographic detector frames and renders
// them as viewable raster images.
//
// A frame arrives as a proprietary "block" file holding a grid of raw
// intensity readings. The pipeline subtracts the background signal floor,
// flat-fields the grid against its beta-thorne reference rows and detector
// reference columns, clamps the result to at most 1.0, and produces a
// normalized grayscale view plus an optional log-attenuation thickness map,
// both serialized as uncompressed BMP.
package flatfield
