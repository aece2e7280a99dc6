package framework_for_imgui

import (
	"github.com/inkyblackness/imgui-go/v4"
)

// FontSizes are the pixel sizes loaded into the atlas, largest first.
var FontSizes = []float32{26, 20, 13}

// SetupFont loads the built-in imgui font at each of FontSizes.
func SetupFont(io imgui.IO) []imgui.Font {
	fonts := io.Fonts()

	var fontsData []imgui.Font
	for _, size := range FontSizes {
		config := imgui.NewFontConfig()
		config.SetSize(size)
		fontsData = append(fontsData, fonts.AddFontDefaultV(config))
		config.Delete()
	}
	return fontsData
}
