package rwire

import (
	"fmt"
	"math"
)

// Type codes as they appear in the low byte of a node header.
const (
	nilSXP     = 0
	symSXP     = 1
	listSXP    = 2
	cloSXP     = 3
	envSXP     = 4
	promSXP    = 5
	langSXP    = 6
	specialSXP = 7
	builtinSXP = 8
	charSXP    = 9
	lglSXP     = 10
	intSXP     = 13
	realSXP    = 14
	cplxSXP    = 15
	strSXP     = 16
	dotSXP     = 17
	vecSXP     = 19
	exprSXP    = 20
	bcodeSXP   = 21
	extptrSXP  = 22
	weakrefSXP = 23
	rawSXP     = 24
	s4SXP      = 25

	// Pseudo types used only on the wire.
	altrepSXP        = 238
	attrListSXP      = 239
	attrLangSXP      = 240
	baseEnvSXP       = 241
	emptyEnvSXP      = 242
	bcRepRefSXP      = 243
	bcRepDefSXP      = 244
	genericRefSXP    = 245
	classRefSXP      = 246
	persistSXP       = 247
	packageSXP       = 248
	namespaceSXP     = 249
	baseNamespaceSXP = 250
	missingArgSXP    = 251
	unboundValueSXP  = 252
	globalEnvSXP     = 253
	nilValueSXP      = 254
	refSXP           = 255
)

// Header word layout.
const (
	typeMask    = 0xff
	isObjectBit = 1 << 8
	hasAttrBit  = 1 << 9
	hasTagBit   = 1 << 10
	levelsShift = 12

	// Level bits carried by string elements.
	bytesMask  = 1 << 1
	latin1Mask = 1 << 2
	utf8Mask   = 1 << 3
	asciiMask  = 1 << 6

	// Level bit marking an S4 object.
	s4ObjectMask = 1 << 4

	maxPackedIndex = math.MaxInt32 >> 8
)

// Length markers.
const (
	naStringLength = -1
	longLength     = -1
)

type flags struct {
	typ     int
	levels  int
	object  bool
	hasAttr bool
	hasTag  bool
}

func unpackFlags(f int32) flags {
	u := uint32(f)
	fl := flags{
		typ:     int(u & typeMask),
		levels:  int(u >> levelsShift),
		object:  u&isObjectBit != 0,
		hasAttr: u&hasAttrBit != 0,
		hasTag:  u&hasTagBit != 0,
	}
	// legacy spellings of attributed pairlists and calls
	switch fl.typ {
	case attrListSXP:
		fl.typ = listSXP
		fl.hasAttr = true
	case attrLangSXP:
		fl.typ = langSXP
		fl.hasAttr = true
	}
	return fl
}

func packFlags(typ int, levels int, object, hasAttr, hasTag bool) int32 {
	u := uint32(typ) | uint32(levels)<<levelsShift
	if object {
		u |= isObjectBit
	}
	if hasAttr {
		u |= hasAttrBit
	}
	if hasTag {
		u |= hasTagBit
	}
	return int32(u)
}

func canCarryTag(typ int) bool {
	switch typ {
	case listSXP, langSXP, cloSXP, promSXP, dotSXP:
		return true
	default:
		return false
	}
}

func typeName(typ int) string {
	switch typ {
	case nilSXP:
		return "NILSXP"
	case symSXP:
		return "SYMSXP"
	case listSXP:
		return "LISTSXP"
	case cloSXP:
		return "CLOSXP"
	case envSXP:
		return "ENVSXP"
	case promSXP:
		return "PROMSXP"
	case langSXP:
		return "LANGSXP"
	case specialSXP:
		return "SPECIALSXP"
	case builtinSXP:
		return "BUILTINSXP"
	case charSXP:
		return "CHARSXP"
	case lglSXP:
		return "LGLSXP"
	case intSXP:
		return "INTSXP"
	case realSXP:
		return "REALSXP"
	case cplxSXP:
		return "CPLXSXP"
	case strSXP:
		return "STRSXP"
	case dotSXP:
		return "DOTSXP"
	case vecSXP:
		return "VECSXP"
	case exprSXP:
		return "EXPRSXP"
	case bcodeSXP:
		return "BCODESXP"
	case extptrSXP:
		return "EXTPTRSXP"
	case weakrefSXP:
		return "WEAKREFSXP"
	case rawSXP:
		return "RAWSXP"
	case s4SXP:
		return "S4SXP"
	case altrepSXP:
		return "ALTREP_SXP"
	case baseEnvSXP:
		return "BASEENV_SXP"
	case emptyEnvSXP:
		return "EMPTYENV_SXP"
	case bcRepRefSXP:
		return "BCREPREF"
	case bcRepDefSXP:
		return "BCREPDEF"
	case genericRefSXP:
		return "GENERICREFSXP"
	case classRefSXP:
		return "CLASSREFSXP"
	case persistSXP:
		return "PERSISTSXP"
	case packageSXP:
		return "PACKAGESXP"
	case namespaceSXP:
		return "NAMESPACESXP"
	case baseNamespaceSXP:
		return "BASENAMESPACE_SXP"
	case missingArgSXP:
		return "MISSINGARG_SXP"
	case unboundValueSXP:
		return "UNBOUNDVALUE_SXP"
	case globalEnvSXP:
		return "GLOBALENV_SXP"
	case nilValueSXP:
		return "NILVALUE_SXP"
	case refSXP:
		return "REFSXP"
	default:
		return fmt.Sprintf("type %d", typ)
	}
}

// RVersion packs an R version the way the preamble stores it.
func RVersion(major, minor, patch int) int32 {
	return int32(major*65536 + minor*256 + patch)
}

// UnpackRVersion formats a packed version as "major.minor.patch".
func UnpackRVersion(v int32) string {
	return fmt.Sprintf("%d.%d.%d", v/65536, (v%65536)/256, v%256)
}
