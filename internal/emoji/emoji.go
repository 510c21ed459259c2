// Package emoji maps icon names used in page content to terminal glyphs.
package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"rocket":     {"🚀", "[>>]"},
	"users":      {"👥", "[**]"},
	"graduation": {"🎓", "[ed]"},
	"book":       {"📖", "[bk]"},
	"award":      {"🏆", "[aw]"},
	"target":     {"🎯", "[()]"},
	"briefcase":  {"💼", "[bz]"},
	"globe":      {"🌍", "[@]"},
	"heart":      {"❤️", "<3"},
	"calendar":   {"📅", "[cal]"},
	"message":    {"💬", "[..]"},
	"shield":     {"🛡️", "[#]"},
	"mail":       {"✉️", "[@]"},
	"link":       {"🔗", "[in]"},
	"success":    {"✅", "[OK]"},
	"error":      {"❌", "[ERR]"},
	"sending":    {"⏳", "[...]"},
	"open":       {"▾", "[-]"},
	"closed":     {"▸", "[+]"},
	"checked":    {"☑", "[x]"},
	"unchecked":  {"☐", "[ ]"},
	"arrow":      {"→", "->"},
	"menu":       {"☰", "[=]"},
	"star":       {"★", "*"},

	// CLI status lines
	"file":   {"📄", "[f]"},
	"folder": {"📁", "[dir]"},
	"stats":  {"📊", "[#]"},
	"tip":    {"💡", "[i]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// Has reports whether key is a known icon
func Has(key string) bool {
	_, ok := emojiMap[key]
	return ok
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	if emojiDisabled {
		return "[?]"
	}
	return "•"
}
