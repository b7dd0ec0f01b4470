// Package imaging bridges the engine's flat pixel buffers and the standard
// image.Image types, and hosts the resampling operations that are easier to
// express on an image than on a buffer.
//
// # Coordinate System
//
// Buffers are row-major with (0,0) at the top-left corner: pixel (x, y) is
// at index y*width+x. Images produced here always have bounds starting at
// (0,0); images read here may have any bounds.
//
// # Color Representation
//
// Stored pixels are B, G, R; packed colors are (R<<16)|(G<<8)|B. Alpha is
// not part of the engine's data model: it is set to 255 on the way out and
// dropped on the way in.
//
// # Thread Safety
//
// All functions are stateless and allocate their own output.
package imaging
