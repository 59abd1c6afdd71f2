package slug

// symbols maps characters to the words they stand for. Each word is emitted
// as its own slug segment.
var symbols = map[rune]string{
	'&': "and",
	'@': "at",
	'+': "plus",
	'$': "dollar",
	'%': "percent",
	'<': "less",
	'>': "greater",
	'|': "or",
	'¢': "cent",
	'£': "pound",
	'¤': "currency",
	'¥': "yen",
	'©': "c",
	'®': "r",
	'°': "degree",
	'™': "tm",
	'€': "euro",
	'₹': "indian rupee",
	'₽': "russian ruble",
	'₩': "won",
	'₱': "peso",
	'₿': "bitcoin",
	'∆': "delta",
	'∞': "infinity",
	'∑': "sum",
	'√': "sqrt",
	'†': "dagger",
	'♥': "love",
	'❤': "love",
	'☢': "radioactive",
	'☣': "biohazard",
	'★': "star",
	'☆': "star",
	'✓': "check",
	'✔': "check",
}

// letters covers Latin letters that have no canonical decomposition.
var letters = map[rune]string{
	'ß': "ss",
	'ẞ': "SS",
	'æ': "ae",
	'Æ': "AE",
	'œ': "oe",
	'Œ': "OE",
	'ø': "o",
	'Ø': "O",
	'đ': "d",
	'Đ': "D",
	'ð': "d",
	'Ð': "D",
	'ł': "l",
	'Ł': "L",
	'þ': "th",
	'Þ': "TH",
	'ħ': "h",
	'Ħ': "H",
	'ı': "i",
}

// dropped runes vanish without leaving a separator, so "don't" stays "dont".
var dropped = map[rune]bool{
	'\'': true,
	'"':  true,
	'`':  true,
	'‘':  true,
	'’':  true,
	'“':  true,
	'”':  true,
}
