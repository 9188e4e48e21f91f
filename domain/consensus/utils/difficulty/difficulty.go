// Package difficulty converts a block's compact "bits" field into the
// 256-bit target and work values the GHOSTDAG engine sums over a mergeset
// (see domain/consensus/processes/ghostdagmanager). The compact encoding is
// the same one Bitcoin-derived chains use: a one-byte exponent plus a
// three-byte mantissa, interpreted the way every daglabs-btcd caller of
// util.CompactToBig expects.
package difficulty

import "math/big"

var oneLsh256 = new(big.Int).Lsh(big.NewInt(1), 256)

// CompactToBig converts a compact representation of a target to its
// big.Int form. The compact format is a mantissa/exponent pair stored in
// a uint32: the high 8 bits are the exponent (in bytes), the low 24 bits
// are the signed mantissa.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact converts a big.Int target to its compact representation.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// Target returns the 256-bit target corresponding to a block's difficulty,
// as measured in compact "bits": target = 2^256 / difficulty, equivalently
// the value the compact encoding stores directly.
func Target(bits uint32) *big.Int {
	return CompactToBig(bits)
}

// CalcWork returns the proof-of-work value a block with the given compact
// difficulty bits contributes: work = (^target) / (target + 1) + 1,
// computed without overflow since target is always strictly less than
// 2^256.
//
// This is the quantity GHOSTDAG sums, per mergeset member, into BlueWork.
func CalcWork(bits uint32) *big.Int {
	target := Target(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}

	// ^target, within the 256-bit space, is (2^256 - 1) - target.
	notTarget := new(big.Int).Sub(oneLsh256, big.NewInt(1))
	notTarget.Sub(notTarget, target)

	denominator := new(big.Int).Add(target, big.NewInt(1))

	work := new(big.Int).Div(notTarget, denominator)
	work.Add(work, big.NewInt(1))
	return work
}
