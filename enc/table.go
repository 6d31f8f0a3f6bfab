package enc

import (
	gdamore "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Registered encoding IDs. The order is frozen; new encodings append.
const (
	ASCII ID = iota
	Latin1
	UTF8
	UTF16 // canonical unit-order UTF-16; unit-based storage, compactable
	UTF16LE
	UTF16BE
	UTF32 // canonical unit-order UTF-32; unit-based storage, compactable
	UTF32LE
	UTF32BE
	Bytes // uninterpreted bytes; every value well-formed

	ISO8859_2
	ISO8859_3
	ISO8859_4
	ISO8859_5
	ISO8859_6
	ISO8859_7
	ISO8859_8
	ISO8859_9
	ISO8859_10
	ISO8859_13
	ISO8859_14
	ISO8859_15
	ISO8859_16

	KOI8R
	KOI8U
	Macintosh
	MacintoshCyrillic

	Windows874
	Windows1250
	Windows1251
	Windows1252
	Windows1253
	Windows1254
	Windows1255
	Windows1256
	Windows1257
	Windows1258

	CodePage037
	CodePage437
	CodePage850
	CodePage852
	CodePage855
	CodePage858
	CodePage860
	CodePage862
	CodePage863
	CodePage865
	CodePage866
	CodePage1047
	CodePage1140
	XUserDefined

	ShiftJIS
	EUCJP
	ISO2022JP
	EUCKR
	GBK
	GB18030
	HZGB2312
	Big5
	EBCDIC
)

// native builds a descriptor for one of the directly implemented encodings.
func native(id ID, name string, fam family, unit int, fixed, ascii, latin1, bmp bool, maxCR CodeRange, aliases ...string) Encoding {
	return Encoding{
		id: id, name: name, aliases: aliases, fam: fam,
		unitWidth: unit, fixedWidth: fixed,
		ascii: ascii, latin1: latin1, bmp: bmp, maxCR: maxCR,
	}
}

// cm builds a descriptor for a single-byte x/text charmap encoding.
func cm(id ID, name string, c *charmap.Charmap, ascii bool, aliases ...string) Encoding {
	return Encoding{
		id: id, name: name, aliases: aliases, fam: famCharmap,
		unitWidth: 1, fixedWidth: true,
		ascii: ascii, maxCR: CRValid,
		cmap: c, xenc: c,
	}
}

// mb builds a descriptor for a multibyte transform-backed encoding.
func mb(id ID, name string, x encoding.Encoding, ascii, latin1, bmp, streamOnly bool, aliases ...string) Encoding {
	return Encoding{
		id: id, name: name, aliases: aliases, fam: famXForm,
		unitWidth: 1, fixedWidth: false,
		ascii: ascii, latin1: latin1, bmp: bmp, maxCR: CRValid,
		streamOnly: streamOnly, xenc: x,
	}
}

var table = [...]Encoding{
	native(ASCII, "US-ASCII", famASCII, 1, true, true, false, false, CR7Bit, "ASCII", "ANSI_X3.4-1968", "646"),
	native(Latin1, "ISO-8859-1", famLatin1, 1, true, true, true, false, CR8Bit, "Latin-1", "L1", "ISO8859-1"),
	native(UTF8, "UTF-8", famUTF8, 1, false, true, true, true, CRValid, "UTF8"),
	native(UTF16, "UTF-16", famUTF16, 2, false, true, true, true, CRValid, "UTF16"),
	native(UTF16LE, "UTF-16LE", famUTF16Swap, 2, false, false, true, true, CRValid),
	native(UTF16BE, "UTF-16BE", famUTF16Swap, 2, false, false, true, true, CRValid),
	native(UTF32, "UTF-32", famUTF32, 4, true, true, true, true, CRValid, "UTF32"),
	native(UTF32LE, "UTF-32LE", famUTF32Swap, 4, true, false, true, true, CRValid),
	native(UTF32BE, "UTF-32BE", famUTF32Swap, 4, true, false, true, true, CRValid),
	native(Bytes, "BYTES", famBytes, 1, true, true, false, false, CRValid),

	cm(ISO8859_2, "ISO-8859-2", charmap.ISO8859_2, true, "Latin-2"),
	cm(ISO8859_3, "ISO-8859-3", charmap.ISO8859_3, true, "Latin-3"),
	cm(ISO8859_4, "ISO-8859-4", charmap.ISO8859_4, true, "Latin-4"),
	cm(ISO8859_5, "ISO-8859-5", charmap.ISO8859_5, true),
	cm(ISO8859_6, "ISO-8859-6", charmap.ISO8859_6, true),
	cm(ISO8859_7, "ISO-8859-7", charmap.ISO8859_7, true),
	cm(ISO8859_8, "ISO-8859-8", charmap.ISO8859_8, true),
	cm(ISO8859_9, "ISO-8859-9", charmap.ISO8859_9, true, "Latin-5"),
	cm(ISO8859_10, "ISO-8859-10", charmap.ISO8859_10, true, "Latin-6"),
	cm(ISO8859_13, "ISO-8859-13", charmap.ISO8859_13, true),
	cm(ISO8859_14, "ISO-8859-14", charmap.ISO8859_14, true),
	cm(ISO8859_15, "ISO-8859-15", charmap.ISO8859_15, true, "Latin-9"),
	cm(ISO8859_16, "ISO-8859-16", charmap.ISO8859_16, true),

	cm(KOI8R, "KOI8-R", charmap.KOI8R, true),
	cm(KOI8U, "KOI8-U", charmap.KOI8U, true),
	cm(Macintosh, "macintosh", charmap.Macintosh, true, "MacRoman"),
	cm(MacintoshCyrillic, "x-mac-cyrillic", charmap.MacintoshCyrillic, true, "MacCyrillic"),

	cm(Windows874, "windows-874", charmap.Windows874, true, "CP874"),
	cm(Windows1250, "windows-1250", charmap.Windows1250, true, "CP1250"),
	cm(Windows1251, "windows-1251", charmap.Windows1251, true, "CP1251"),
	cm(Windows1252, "windows-1252", charmap.Windows1252, true, "CP1252"),
	cm(Windows1253, "windows-1253", charmap.Windows1253, true, "CP1253"),
	cm(Windows1254, "windows-1254", charmap.Windows1254, true, "CP1254"),
	cm(Windows1255, "windows-1255", charmap.Windows1255, true, "CP1255"),
	cm(Windows1256, "windows-1256", charmap.Windows1256, true, "CP1256"),
	cm(Windows1257, "windows-1257", charmap.Windows1257, true, "CP1257"),
	cm(Windows1258, "windows-1258", charmap.Windows1258, true, "CP1258"),

	cm(CodePage037, "IBM037", charmap.CodePage037, false, "CP037"),
	cm(CodePage437, "IBM437", charmap.CodePage437, true, "CP437"),
	cm(CodePage850, "IBM850", charmap.CodePage850, true, "CP850"),
	cm(CodePage852, "IBM852", charmap.CodePage852, true, "CP852"),
	cm(CodePage855, "IBM855", charmap.CodePage855, true, "CP855"),
	cm(CodePage858, "IBM00858", charmap.CodePage858, true, "CP858"),
	cm(CodePage860, "IBM860", charmap.CodePage860, true, "CP860"),
	cm(CodePage862, "IBM862", charmap.CodePage862, true, "CP862"),
	cm(CodePage863, "IBM863", charmap.CodePage863, true, "CP863"),
	cm(CodePage865, "IBM865", charmap.CodePage865, true, "CP865"),
	cm(CodePage866, "IBM866", charmap.CodePage866, true, "CP866"),
	cm(CodePage1047, "IBM1047", charmap.CodePage1047, false, "CP1047"),
	cm(CodePage1140, "IBM01140", charmap.CodePage1140, false, "CP1140"),
	cm(XUserDefined, "x-user-defined", charmap.XUserDefined, true),

	mb(ShiftJIS, "Shift_JIS", japanese.ShiftJIS, true, false, false, false, "SJIS"),
	mb(EUCJP, "EUC-JP", japanese.EUCJP, true, false, false, false),
	mb(ISO2022JP, "ISO-2022-JP", japanese.ISO2022JP, true, false, false, true),
	mb(EUCKR, "EUC-KR", korean.EUCKR, true, false, false, false),
	mb(GBK, "GBK", simplifiedchinese.GBK, true, false, false, false, "CP936"),
	mb(GB18030, "GB18030", simplifiedchinese.GB18030, true, true, true, false),
	mb(HZGB2312, "HZ-GB-2312", simplifiedchinese.HZGB2312, true, false, false, true),
	mb(Big5, "Big5", traditionalchinese.Big5, true, false, false, false, "CP950"),
	{
		id: EBCDIC, name: "EBCDIC", aliases: []string{"IBM-EBCDIC"}, fam: famXForm,
		unitWidth: 1, fixedWidth: true, maxCR: CRValid, xenc: gdamore.EBCDIC,
	},
}
