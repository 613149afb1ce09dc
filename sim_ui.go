package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Control panel bounds, used to keep button clicks from dragging the camera.
const (
	panelLeft   = 10
	panelTop    = 10
	panelRight  = 370
	panelBottom = 190
)

func cursorOverPanel() bool {
	x, y := ebiten.CursorPosition()
	return x >= panelLeft && x <= panelRight && y >= panelTop && y <= panelBottom
}

// buildUI creates the resolution button rows and the reset button. The UI is
// rebuilt whenever the active resolution changes so the highlight follows.
func buildUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x32, G: 0x32, B: 0x50, A: 0xff})
	btnHoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x50, G: 0x50, B: 0x78, A: 0xff})
	btnActiveImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x64, G: 0xc8, B: 0x64, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	newButton := func(label string, active bool, onClick func()) *widget.Button {
		idle := btnImg
		if active {
			idle = btnActiveImg
		}
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: btnHoverImg, Pressed: btnActiveImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(70, 36)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	newRow := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
		)
	}

	topRow := newRow()
	bottomRow := newRow()
	for i, res := range resolutionChoices {
		res := res
		btn := newButton(fmt.Sprintf("%dx%d", res, res), res == g.resolution, func() {
			g.setResolution(res)
		})
		if i < len(resolutionChoices)/2 {
			topRow.AddChild(btn)
		} else {
			bottomRow.AddChild(btn)
		}
	}

	resetBtn := newButton("RESET", false, func() {
		g.resetCloth()
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(topRow)
	panel.AddChild(bottomRow)
	panel.AddChild(resetBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: panelTop, Left: panelLeft}),
		)),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
