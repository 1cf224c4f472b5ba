package ebf

import (
	"crypto/sha1"
	"fmt"
	"hash/crc32"

	"github.com/MuhammadImtananWali/ebf/raster"
)

// Digests of the binary form of a grid
type digests struct {
	sha1 string
	crc  string
	blob []byte
}

func digestGrid(g *raster.Grid) (digests, error) {
	b, err := g.MarshalBinary()
	if err != nil {
		return digests{}, err
	}
	return digests{
		sha1: fmt.Sprintf("%X", sha1.Sum(b)),
		crc:  fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b)),
		blob: b,
	}, nil
}

// Checksum returns the CRC-32 of g's tag, dimensions and samples as eight
// hex digits. Grids that compare identical have the same checksum.
func Checksum(g *raster.Grid) (string, error) {
	d, err := digestGrid(g)
	if err != nil {
		return "", err
	}
	return d.crc, nil
}
