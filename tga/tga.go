/*
Package tga implements a Truevision TGA decoder and encoder.

Only true-colour images are supported. The decoder accepts uncompressed
(type 2) and run-length encoded (type 10) images of 24 or 32 bits per pixel
with either a bottom-left or top-left origin. The encoder always writes an
uncompressed 32-bit image with a top-left origin and 8 bits of alpha, which
is what texture loaders expect of an atlas.
*/
package tga

const (
	headerSize = 18

	typeTrueColor    = 2
	typeTrueColorRLE = 10

	descTopLeft   = 0x20
	descAlphaMask = 0x0f
)
