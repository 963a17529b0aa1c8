package utils

import (
	"fmt"
	"net/url"
)

// avatarPalette holds the background colors avatars are generated
// against. Order matters: the color index is derived from the username.
var avatarPalette = []string{
	"9333ea", "db2777", "7c3aed", "2563eb", "059669", "d97706", "dc2626",
}

// AvatarURL derives a deterministic avatar image URL for a username:
// the first character's code point modulo the palette size selects the
// background color, so the same username always maps to the same image.
func AvatarURL(username string) string {
	color := avatarPalette[0]
	for _, r := range username {
		color = avatarPalette[int(r)%len(avatarPalette)]
		break
	}
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=%s&color=fff&size=128",
		url.QueryEscape(username), color,
	)
}
