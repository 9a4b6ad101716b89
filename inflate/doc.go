// Package inflate turns compressed files into in-memory byte sources that
// cursors can read like a mapped region.
//
// The compression format is detected from the leading magic bytes. zstd,
// lz4 frames, gzip and s2/snappy framed streams are recognized. Anything
// else is treated as uncompressed and served directly from the mapping.
//
//	src, err := inflate.Open("archive.bin.zst")
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	r, err := cursor.NewReader(src)
package inflate
