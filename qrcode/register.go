// Package qrcode wires the QR code decoder into the format registry.
// Importing it (for side effects) makes FormatQRCode decodable through
// gridscan.DecodeMatrix.
package qrcode

import (
	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/qrcode/decoder"
)

func init() {
	gridscan.RegisterMatrixDecoder(gridscan.FormatQRCode, decoder.NewDecoder())
}
