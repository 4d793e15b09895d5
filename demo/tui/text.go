package tui

// UI Text Constants
const (
	TextTitle            = "ContentPilot Blog Demo"
	TextPlaceholder      = "Enter a keyword, e.g. latest seo trends 2025"
	TextFooterInput      = "Enter to generate | Esc or Ctrl+C to quit"
	TextFooterGenerating = "Generating... | Ctrl+C to quit"
	TextFooterDone       = "Press 'n' for another keyword | Press 'q' to quit"
	TextNoImage          = "(no featured image)"
	previewRunes         = 400
)
