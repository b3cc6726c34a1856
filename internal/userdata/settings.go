package userdata

// Volume is an on/off switch with a level from 0 to 1.
type Volume struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// Animation controls screen transitions.
type Animation struct {
	Enabled bool   `json:"enabled"`
	Speed   string `json:"speed"`
}

// Display holds look-and-feel preferences.
type Display struct {
	Theme    string `json:"theme"`
	FontSize string `json:"fontSize"`
}

// GamePrefs tune the play screen.
type GamePrefs struct {
	// AutoNextQuestion advances after feedback without a key press.
	AutoNextQuestion bool `json:"autoNextQuestion"`
	ShowPinyinHint   bool `json:"showPinyinHint"`
}

// Settings are the learner's app preferences. Music is a pointer so that
// documents saved before it existed can be detected and upgraded.
type Settings struct {
	Sound     Volume    `json:"sound"`
	Music     *Volume   `json:"music"`
	Animation Animation `json:"animation"`
	Display   Display   `json:"display"`
	Game      GamePrefs `json:"game"`
}

// DefaultMusic is the music setting for new and upgraded documents.
func DefaultMusic() *Volume {
	return &Volume{Enabled: true, Volume: 0.5}
}

// DefaultSettings returns the settings for a new learner.
func DefaultSettings() Settings {
	return Settings{
		Sound:     Volume{Enabled: true, Volume: 0.7},
		Music:     DefaultMusic(),
		Animation: Animation{Enabled: true, Speed: "normal"},
		Display:   Display{Theme: "cute", FontSize: "medium"},
		Game:      GamePrefs{AutoNextQuestion: false, ShowPinyinHint: true},
	}
}
