package lectio

import (
	"strings"
)

// Book is a canonical book of the Bible. Books are ordered: the Hebrew
// canon first, then the New Testament, then the deuterocanonical books.
// The zero value is BookUnknown and never names a real book.
type Book int

// Canonical books. The numeric value of Genesis through Revelation is the
// 1-based index used by upstream services to address a book.
const (
	BookUnknown Book = iota
	Genesis
	Exodus
	Leviticus
	Numbers
	Deuteronomy
	Joshua
	Judges
	Ruth
	Samuel1
	Samuel2
	Kings1
	Kings2
	Chronicles1
	Chronicles2
	Ezra
	Nehemiah
	Esther
	Job
	Psalms
	Proverbs
	Ecclesiastes
	SongOfSolomon
	Isaiah
	Jeremiah
	Lamentations
	Ezekiel
	Daniel
	Hosea
	Joel
	Amos
	Obadiah
	Jonah
	Micah
	Nahum
	Habakkuk
	Zephaniah
	Haggai
	Zechariah
	Malachi
	Matthew
	Mark
	Luke
	John
	Acts
	Romans
	Corinthians1
	Corinthians2
	Galatians
	Ephesians
	Philippians
	Colossians
	Thessalonians1
	Thessalonians2
	Timothy1
	Timothy2
	Titus
	Philemon
	Hebrews
	James
	Peter1
	Peter2
	John1
	John2
	John3
	Jude
	Revelation
	Tobit
	Judith
	EstherGreek
	Wisdom
	Sirach
	Baruch
	LetterOfJeremiah
	PrayerOfAzariah
	Susanna
	BelAndTheDragon
	Maccabees1
	Maccabees2
	Esdras1
	PrayerOfManasseh
	Psalm151
	Maccabees3
	Esdras2
	Maccabees4
)

// BookMask is a bitset of the books a version carries. Bit 0 covers the
// Old Testament, bit 1 the New Testament, and bits 2 through 19 one
// deuterocanonical book each, in Book order.
type BookMask uint64

// Book group masks.
const (
	OldTestament    BookMask = 1 << 0
	NewTestament    BookMask = 1 << 1
	Deuterocanon    BookMask = ((1 << 18) - 1) << 2
	ProtestantBible BookMask = OldTestament | NewTestament
	AllBooks        BookMask = ProtestantBible | Deuterocanon
)

// Covers reports whether every book in other is also in m.
func (m BookMask) Covers(other BookMask) bool {
	return other != 0 && m&other == other
}

type bookInfo struct {
	name    string
	aliases []string
}

var bookTable = [...]bookInfo{
	BookUnknown:      {},
	Genesis:          {"Genesis", []string{"gen", "ge", "gn"}},
	Exodus:           {"Exodus", []string{"exod", "exo", "ex"}},
	Leviticus:        {"Leviticus", []string{"lev", "le", "lv"}},
	Numbers:          {"Numbers", []string{"num", "nu", "nm", "nb"}},
	Deuteronomy:      {"Deuteronomy", []string{"deut", "deu", "dt"}},
	Joshua:           {"Joshua", []string{"josh", "jos", "jsh"}},
	Judges:           {"Judges", []string{"judg", "jdg", "jg", "jdgs"}},
	Ruth:             {"Ruth", []string{"rth", "ru"}},
	Samuel1:          {"1 Samuel", []string{"1sam", "1sa", "1sm", "1s"}},
	Samuel2:          {"2 Samuel", []string{"2sam", "2sa", "2sm", "2s"}},
	Kings1:           {"1 Kings", []string{"1kgs", "1ki", "1kg", "1k"}},
	Kings2:           {"2 Kings", []string{"2kgs", "2ki", "2kg", "2k"}},
	Chronicles1:      {"1 Chronicles", []string{"1chron", "1chr", "1ch"}},
	Chronicles2:      {"2 Chronicles", []string{"2chron", "2chr", "2ch"}},
	Ezra:             {"Ezra", []string{"ezr", "ez"}},
	Nehemiah:         {"Nehemiah", []string{"neh", "ne"}},
	Esther:           {"Esther", []string{"esth", "est", "es"}},
	Job:              {"Job", []string{"jb"}},
	Psalms:           {"Psalms", []string{"psalm", "pslm", "psa", "psm", "ps", "pss"}},
	Proverbs:         {"Proverbs", []string{"prov", "pro", "prv", "pr"}},
	Ecclesiastes:     {"Ecclesiastes", []string{"eccles", "eccle", "ecc", "ec", "qoh"}},
	SongOfSolomon:    {"Song of Solomon", []string{"song", "songofsongs", "sos", "so", "canticles", "cant"}},
	Isaiah:           {"Isaiah", []string{"isa", "is"}},
	Jeremiah:         {"Jeremiah", []string{"jer", "je", "jr"}},
	Lamentations:     {"Lamentations", []string{"lam", "la"}},
	Ezekiel:          {"Ezekiel", []string{"ezek", "eze", "ezk"}},
	Daniel:           {"Daniel", []string{"dan", "da", "dn"}},
	Hosea:            {"Hosea", []string{"hos", "ho"}},
	Joel:             {"Joel", []string{"jl"}},
	Amos:             {"Amos", []string{"am"}},
	Obadiah:          {"Obadiah", []string{"obad", "ob"}},
	Jonah:            {"Jonah", []string{"jnh", "jon"}},
	Micah:            {"Micah", []string{"mic", "mc"}},
	Nahum:            {"Nahum", []string{"nah", "na"}},
	Habakkuk:         {"Habakkuk", []string{"hab", "hb"}},
	Zephaniah:        {"Zephaniah", []string{"zeph", "zep", "zp"}},
	Haggai:           {"Haggai", []string{"hag", "hg"}},
	Zechariah:        {"Zechariah", []string{"zech", "zec", "zc"}},
	Malachi:          {"Malachi", []string{"mal", "ml"}},
	Matthew:          {"Matthew", []string{"matt", "mat", "mt"}},
	Mark:             {"Mark", []string{"mrk", "mar", "mk", "mr"}},
	Luke:             {"Luke", []string{"luk", "lk"}},
	John:             {"John", []string{"joh", "jhn", "jn"}},
	Acts:             {"Acts", []string{"act", "ac"}},
	Romans:           {"Romans", []string{"rom", "ro", "rm"}},
	Corinthians1:     {"1 Corinthians", []string{"1cor", "1co"}},
	Corinthians2:     {"2 Corinthians", []string{"2cor", "2co"}},
	Galatians:        {"Galatians", []string{"gal", "ga"}},
	Ephesians:        {"Ephesians", []string{"eph", "ephes"}},
	Philippians:      {"Philippians", []string{"phil", "php", "pp"}},
	Colossians:       {"Colossians", []string{"col", "co"}},
	Thessalonians1:   {"1 Thessalonians", []string{"1thess", "1thes", "1th"}},
	Thessalonians2:   {"2 Thessalonians", []string{"2thess", "2thes", "2th"}},
	Timothy1:         {"1 Timothy", []string{"1tim", "1ti"}},
	Timothy2:         {"2 Timothy", []string{"2tim", "2ti"}},
	Titus:            {"Titus", []string{"tit", "ti"}},
	Philemon:         {"Philemon", []string{"philem", "phm", "pm"}},
	Hebrews:          {"Hebrews", []string{"heb"}},
	James:            {"James", []string{"jas", "jm"}},
	Peter1:           {"1 Peter", []string{"1pet", "1pe", "1pt", "1p"}},
	Peter2:           {"2 Peter", []string{"2pet", "2pe", "2pt", "2p"}},
	John1:            {"1 John", []string{"1jhn", "1jn", "1jo", "1j"}},
	John2:            {"2 John", []string{"2jhn", "2jn", "2jo", "2j"}},
	John3:            {"3 John", []string{"3jhn", "3jn", "3jo", "3j"}},
	Jude:             {"Jude", []string{"jud", "jd"}},
	Revelation:       {"Revelation", []string{"revelations", "rev", "re", "apocalypse"}},
	Tobit:            {"Tobit", []string{"tob", "tb"}},
	Judith:           {"Judith", []string{"jdth", "jdt", "jth"}},
	EstherGreek:      {"Greek Esther", []string{"esthergreek", "addesth", "adde", "esg"}},
	Wisdom:           {"Wisdom of Solomon", []string{"wisdom", "wis", "ws"}},
	Sirach:           {"Sirach", []string{"sir", "ecclesiasticus", "ecclus"}},
	Baruch:           {"Baruch", []string{"bar"}},
	LetterOfJeremiah: {"Letter of Jeremiah", []string{"letjer", "lje", "epjer"}},
	PrayerOfAzariah:  {"Prayer of Azariah", []string{"prazar", "azariah", "songofthreeyouths", "sgthree"}},
	Susanna:          {"Susanna", []string{"sus"}},
	BelAndTheDragon:  {"Bel and the Dragon", []string{"bel"}},
	Maccabees1:       {"1 Maccabees", []string{"1macc", "1mac", "1ma"}},
	Maccabees2:       {"2 Maccabees", []string{"2macc", "2mac", "2ma"}},
	Esdras1:          {"1 Esdras", []string{"1esd", "1es"}},
	PrayerOfManasseh: {"Prayer of Manasseh", []string{"prman", "manasseh", "pma"}},
	Psalm151:         {"Additional Psalm", []string{"ps151", "psalm151"}},
	Maccabees3:       {"3 Maccabees", []string{"3macc", "3mac", "3ma"}},
	Esdras2:          {"2 Esdras", []string{"2esd", "2es"}},
	Maccabees4:       {"4 Maccabees", []string{"4macc", "4mac", "4ma"}},
}

// bookKeys maps every normalized name and alias to its book.
var bookKeys = func() map[string]Book {
	m := make(map[string]Book)
	for b := Genesis; b <= Maccabees4; b++ {
		info := bookTable[b]
		m[normalizeBookKey(info.name)] = b
		for _, alias := range info.aliases {
			m[alias] = b
		}
	}
	return m
}()

// Valid reports whether b names a real book.
func (b Book) Valid() bool {
	return b > BookUnknown && b <= Maccabees4
}

// String returns the canonical English name of the book.
func (b Book) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bookTable[b].name
}

// Deuterocanonical reports whether b is outside the Protestant canon.
func (b Book) Deuterocanonical() bool {
	return b >= Tobit && b <= Maccabees4
}

// Mask returns the coverage bit a version must carry to serve b.
func (b Book) Mask() BookMask {
	switch {
	case !b.Valid():
		return 0
	case b < Matthew:
		return OldTestament
	case b <= Revelation:
		return NewTestament
	default:
		return 1 << (2 + uint(b-Tobit))
	}
}

// LookupBook returns the book named by s. Matching is case-insensitive and
// ignores spaces and periods. Numbered books may use a digit, a roman
// numeral or an ordinal word as their prefix ("1 John", "I John",
// "First John"); an unnumbered name never matches a numbered book.
func LookupBook(s string) (Book, bool) {
	b, ok := bookKeys[normalizeBookKey(s)]
	return b, ok
}

var ordinalPrefixes = []struct{ prefix, digit string }{
	{"iii ", "3"},
	{"ii ", "2"},
	{"iv ", "4"},
	{"i ", "1"},
	{"first ", "1"},
	{"second ", "2"},
	{"third ", "3"},
	{"fourth ", "4"},
}

func normalizeBookKey(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	for _, p := range ordinalPrefixes {
		if strings.HasPrefix(s, p.prefix) {
			s = p.digit + s[len(p.prefix):]
			break
		}
	}
	s = strings.NewReplacer(" ", "", ".", "").Replace(s)
	return s
}

// ParseBookMask builds a mask from a comma separated list of group names
// ("OT", "NT", "DC") and book names.
func ParseBookMask(s string) (BookMask, error) {
	var mask BookMask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch strings.ToUpper(part) {
		case "OT":
			mask |= OldTestament
			continue
		case "NT":
			mask |= NewTestament
			continue
		case "DC", "APOCRYPHA":
			mask |= Deuterocanon
			continue
		}
		b, ok := LookupBook(part)
		if !ok {
			return 0, Errorf(EBOOK, "I do not understand the book %q", part)
		}
		mask |= b.Mask()
	}
	if mask == 0 {
		return 0, Errorf(EINVALID, "At least one book group is required")
	}
	return mask, nil
}
