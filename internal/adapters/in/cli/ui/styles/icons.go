package styles

// Status and list glyphs. Plain unicode so no patched font is needed.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
	IconBullet  = "▸"
	IconServer  = "◆"
	IconStopped = "○"
	IconPipe    = "│"
)
