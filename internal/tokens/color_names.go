package tokens

// namedColors maps canonical hex values to their semantic names.
var namedColors = map[string]string{
	"#ffffff": "White",
	"#000000": "Black",
	"#3b82f6": "Primary Blue",
	"#1d4ed8": "Dark Blue",
	"#ef4444": "Error Red",
	"#10b981": "Success Green",
	"#f59e0b": "Warning Amber",
	"#8b5cf6": "Accent Purple",
	"#ec4899": "Accent Pink",
	"#06b6d4": "Info Cyan",
	"#6b7280": "Neutral Gray",
	"#9ca3af": "Muted Gray",
	"#374151": "Dark Gray",
	"#111827": "Near Black",
	"#f3f4f6": "Light Gray",
}
