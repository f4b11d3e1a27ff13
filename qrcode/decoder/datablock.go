package decoder

import gridscan "github.com/gridscan/gridscan"

// DataBlock is one error-correction block: the first NumDataCodewords
// entries of Codewords are data, the rest parity.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks de-interleaves the raw codeword stream into its blocks.
// The stream interleaves column-major: first the i-th data codeword of
// every block, then the extra data codewords of the longer blocks, then
// the parity codewords the same way. Short blocks come first in the
// returned order.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) ([]DataBlock, error) {
	ecBlocks := version.ECBlocksForLevel(ecLevel)

	blocks := make([]DataBlock, 0, ecBlocks.NumBlocks())
	totalCodewords := 0
	for _, run := range ecBlocks.Blocks {
		for i := 0; i < run.Count; i++ {
			size := run.DataCodewords + ecBlocks.ECCodewordsPerBlock
			blocks = append(blocks, DataBlock{
				NumDataCodewords: run.DataCodewords,
				Codewords:        make([]byte, size),
			})
			totalCodewords += size
		}
	}
	if totalCodewords != len(rawCodewords) {
		return nil, gridscan.ErrFormat
	}

	// The table lists shorter blocks first; find where the longer ones start.
	shortBlockSize := len(blocks[0].Codewords)
	longBlocksStartAt := len(blocks)
	for longBlocksStartAt > 0 && len(blocks[longBlocksStartAt-1].Codewords) != shortBlockSize {
		longBlocksStartAt--
	}

	shortBlockDataCodewords := shortBlockSize - ecBlocks.ECCodewordsPerBlock

	offset := 0
	for i := 0; i < shortBlockDataCodewords; i++ {
		for j := range blocks {
			blocks[j].Codewords[i] = rawCodewords[offset]
			offset++
		}
	}
	for j := longBlocksStartAt; j < len(blocks); j++ {
		blocks[j].Codewords[shortBlockDataCodewords] = rawCodewords[offset]
		offset++
	}
	for i := shortBlockDataCodewords; i < shortBlockSize; i++ {
		for j := range blocks {
			pos := i
			if j >= longBlocksStartAt {
				pos = i + 1
			}
			blocks[j].Codewords[pos] = rawCodewords[offset]
			offset++
		}
	}

	return blocks, nil
}
