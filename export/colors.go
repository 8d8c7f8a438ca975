package export

// Colors is the closed palette accepted in export lines. Names and their
// spelling ("Darkorange") match what downstream readers expect.
var Colors = [...]string{
	"AliceBlue", "AntiqueWhite", "Aqua", "Aquamarine", "Azure", "Beige",
	"Bisque", "Black", "BlanchedAlmond", "Blue", "BlueViolet", "Brown",
	"BurlyWood", "CadetBlue", "Chartreuse", "Chocolate", "Coral", "CornflowerBlue",
	"Cornsilk", "Crimson", "Cyan", "DarkBlue", "DarkCyan", "DarkGoldenRod",
	"DarkGray", "DarkGrey", "DarkGreen", "DarkKhaki", "DarkMagenta", "DarkOliveGreen",
	"Darkorange", "DarkOrchid", "DarkRed", "DarkSalmon", "DarkSeaGreen",
	"DarkSlateBlue", "DarkSlateGray", "DarkSlateGrey", "DarkTurquoise",
	"DarkViolet", "DeepPink", "DeepSkyBlue", "DimGray", "DimGrey", "DodgerBlue",
	"FireBrick", "FloralWhite", "ForestGreen", "Fuchsia", "Gainsboro",
	"GhostWhite", "Gold", "GoldenRod", "Gray", "Grey", "Green", "GreenYellow",
	"HoneyDew", "HotPink", "IndianRed", "Indigo", "Ivory", "Khaki", "Lavender",
	"LavenderBlush", "LawnGreen", "LemonChiffon", "LightBlue", "LightCoral",
	"LightCyan", "LightGoldenRodYellow", "LightGray", "LightGrey", "LightGreen",
	"LightPink", "LightSalmon", "LightSeaGreen", "LightSkyBlue", "LightSlateGray",
	"LightSlateGrey", "LightSteelBlue", "LightYellow", "Lime", "LimeGreen",
	"Linen", "Magenta", "Maroon", "MediumAquaMarine", "MediumBlue", "MediumOrchid",
	"MediumPurple", "MediumSeaGreen", "MediumSlateBlue", "MediumSpringGreen",
	"MediumTurquoise", "MediumVioletRed", "MidnightBlue", "MintCream",
	"MistyRose", "Moccasin", "NavajoWhite", "Navy", "OldLace", "Olive",
	"OliveDrab", "Orange", "OrangeRed", "Orchid", "PaleGoldenRod", "PaleGreen",
	"PaleTurquoise", "PaleVioletRed", "PapayaWhip", "PeachPuff", "Peru",
	"Pink", "Plum", "PowderBlue", "Purple", "Red", "RosyBrown", "RoyalBlue",
	"SaddleBrown", "Salmon", "SandyBrown", "SeaGreen", "SeaShell", "Sienna",
	"Silver", "SkyBlue", "SlateBlue", "SlateGray", "SlateGrey", "Snow",
	"SpringGreen", "SteelBlue", "Tan", "Teal", "Thistle", "Tomato", "Turquoise",
	"Violet", "Wheat", "White", "WhiteSmoke", "Yellow", "YellowGreen",
}

var colorSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Colors))
	for _, c := range Colors {
		m[c] = struct{}{}
	}
	return m
}()

// IsColor reports whether name is in the palette. Matching is exact.
func IsColor(name string) bool {
	_, ok := colorSet[name]
	return ok
}
