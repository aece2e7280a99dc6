package gui

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/kaishuu0123/nescore/internal/gui/framework_for_imgui"
)

type MasterWindow struct {
	width      int
	height     int
	ClearColor [4]float32
	title      string
	Platform   *framework_for_imgui.GLFW
	Renderer   *framework_for_imgui.OpenGL2
	context    *imgui.Context
	io         *imgui.IO
	FontsData  []imgui.Font
}

func NewMasterWindow(title string, width, height int) (*MasterWindow, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	platform, err := framework_for_imgui.NewGLFW(io, width, height, title)
	if err != nil {
		context.Destroy()
		return nil, err
	}

	r, err := framework_for_imgui.NewOpenGL2(io)
	if err != nil {
		platform.Dispose()
		context.Destroy()
		return nil, err
	}

	fontsData := framework_for_imgui.SetupFont(io)
	r.SetFontTexture(io.Fonts().TextureDataRGBA32())

	mw := &MasterWindow{
		ClearColor: [4]float32{0, 0, 0, 1},
		width:      width,
		height:     height,
		title:      title,
		io:         &io,
		context:    context,
		Platform:   platform,
		Renderer:   r,
		FontsData:  fontsData,
	}
	mw.setTheme()
	return mw, nil
}

func (w *MasterWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *MasterWindow) SetTitle(title string) {
	w.title = title
	w.Platform.Window.SetTitle(title)
}

// Dispose releases the renderer, the window and the imgui context.
func (w *MasterWindow) Dispose() {
	w.Renderer.Dispose()
	w.Platform.Dispose()
	w.context.Destroy()
}

// Frame runs one imgui frame; build issues the draw calls.
func (w *MasterWindow) Frame(build func()) {
	w.Platform.NewFrame()
	imgui.NewFrame()

	build()

	imgui.Render()
	w.Renderer.PreRender(w.ClearColor)
	w.Renderer.Render(w.Platform.DisplaySize(), w.Platform.FramebufferSize(), imgui.RenderedDrawData())
	w.Platform.PostRender()
}

var themeColors = map[imgui.StyleColorID]imgui.Vec4{
	imgui.StyleColorText:          {X: 0.93, Y: 0.94, Z: 0.95, W: 1.00},
	imgui.StyleColorTextDisabled:  {X: 0.40, Y: 0.44, Z: 0.48, W: 1.00},
	imgui.StyleColorWindowBg:      {X: 0.08, Y: 0.09, Z: 0.11, W: 0.92},
	imgui.StyleColorPopupBg:       {X: 0.08, Y: 0.09, Z: 0.11, W: 0.96},
	imgui.StyleColorBorder:        {X: 0.22, Y: 0.25, Z: 0.30, W: 1.00},
	imgui.StyleColorFrameBg:       {X: 0.16, Y: 0.19, Z: 0.23, W: 1.00},
	imgui.StyleColorTitleBg:       {X: 0.10, Y: 0.12, Z: 0.14, W: 1.00},
	imgui.StyleColorTitleBgActive: {X: 0.62, Y: 0.10, Z: 0.12, W: 1.00},
	imgui.StyleColorButton:        {X: 0.20, Y: 0.23, Z: 0.28, W: 1.00},
	imgui.StyleColorButtonHovered: {X: 0.75, Y: 0.16, Z: 0.18, W: 1.00},
	imgui.StyleColorButtonActive:  {X: 0.55, Y: 0.08, Z: 0.10, W: 1.00},
	imgui.StyleColorHeader:        {X: 0.20, Y: 0.23, Z: 0.28, W: 0.60},
	imgui.StyleColorHeaderHovered: {X: 0.75, Y: 0.16, Z: 0.18, W: 0.80},
	imgui.StyleColorSeparator:     {X: 0.22, Y: 0.25, Z: 0.30, W: 1.00},
}

func (w *MasterWindow) setTheme() {
	style := imgui.CurrentStyle()

	imgui.PushStyleVarFloat(imgui.StyleVarWindowRounding, 2)
	imgui.PushStyleVarFloat(imgui.StyleVarFrameRounding, 3)
	imgui.PushStyleVarFloat(imgui.StyleVarFrameBorderSize, 1)

	for id, color := range themeColors {
		style.SetColor(id, color)
	}
}

func (w *MasterWindow) SetDropCallback(cb func(filenames []string)) {
	w.Platform.SetDropCallback(cb)
}

func (w *MasterWindow) SetKeyCallback(cb func(key glfw.Key, mods glfw.ModifierKey)) {
	w.Platform.SetKeyCallback(cb)
}

func (w *MasterWindow) SetFocusCallback(cb func(focused bool)) {
	w.Platform.SetFocusCallback(cb)
}
