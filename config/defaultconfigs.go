package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		ShowMoveNumbers: true,
		Colors: ConfigColors{
			Board:       "#c8a96e",
			Line:        "#3d2e14",
			Coord:       "#5c4321",
			BlackStone:  "#1a1a2e",
			WhiteStone:  "#e8e8e8",
			BlackNumber: "#dddddd",
			WhiteNumber: "#333333",
			LastMove:    "#ff4444",
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Server: ServerConfig{
			URL:           "http://localhost:8080/api/state",
			IntervalMS:    500,
			FailThreshold: 3,
		},
		LogLevel: "info",
		MaxLog:   200,
	}
}
